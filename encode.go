package aclmsg

import (
	"bytes"
	"fmt"

	j "github.com/goccy/go-json"
)

// Marshal encodes m as JSON: accounts first (ids sorted, permission keys in
// declaration order), then metadata when it is not empty.
func Marshal(m ACLAccountsMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (m ACLAccountsMessage) MarshalJSON() ([]byte, error) { return Marshal(m) }

// UnmarshalJSON implements json.Unmarshaler with default ParseOpt.
func (m *ACLAccountsMessage) UnmarshalJSON(b []byte) error {
	out, err := Unmarshal(b)
	if err != nil {
		return err
	}
	*m = out
	return nil
}

func (m ACLAccountsMessage) encodeJSON(buf *bytes.Buffer) error {
	buf.WriteString(`{"accounts":{`)
	for i, id := range m.Accounts.IDs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, id); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := m.Accounts[id].encodeJSON(buf); err != nil {
			return fmt.Errorf("aclmsg: encode %s: %w", RootPath().Field(fieldAccounts).Field(id).Pointer(), err)
		}
	}
	buf.WriteByte('}')
	if len(m.Metadata) > 0 {
		b, err := j.Marshal(map[string]any(m.Metadata))
		if err != nil {
			return fmt.Errorf("aclmsg: encode /metadata: %w", err)
		}
		buf.WriteString(`,"metadata":`)
		buf.Write(b)
	}
	buf.WriteByte('}')
	return nil
}

// MarshalJSON writes the permissions with keys in declaration order.
func (p Permissions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p Permissions) encodeJSON(buf *bytes.Buffer) error {
	if err := p.validate(); err != nil {
		return err
	}
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(k.String())
		buf.WriteString(`":`)
		b, err := p[k].MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return nil
}

// validate rejects keys outside the enum and values holding no variant.
func (p Permissions) validate() error {
	for k, v := range p {
		if !k.Valid() {
			return &InvalidEnumValueError{Value: k.String()}
		}
		if v.IsZero() {
			return fmt.Errorf("%s: %w", k, errAccountValueUnset)
		}
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := j.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// WireValue returns m in its wire shape as a JSON-like value tree, the form
// consumed by the YAML and MessagePack codecs.
func (m ACLAccountsMessage) WireValue() (map[string]any, error) {
	accounts := make(map[string]any, len(m.Accounts))
	for id, p := range m.Accounts {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("aclmsg: encode %s: %w", RootPath().Field(fieldAccounts).Field(id).Pointer(), err)
		}
		inner := make(map[string]any, len(p))
		for k, v := range p {
			inner[k.String()] = v.wireValue()
		}
		accounts[id] = inner
	}
	out := map[string]any{fieldAccounts: accounts}
	if len(m.Metadata) > 0 {
		out[fieldMetadata] = map[string]any(m.Metadata)
	}
	return out, nil
}

func (v AccountValue) wireValue() any {
	if v.kind == AccountValueString {
		return v.str
	}
	out := make([]any, len(v.list))
	for i, s := range v.list {
		out[i] = s
	}
	return out
}
