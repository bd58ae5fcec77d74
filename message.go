package aclmsg

import (
	"reflect"
	"slices"
	"sort"
)

// MessageTypeName is the schema title and the type name carried in the BEC
// codec envelope.
const MessageTypeName = "ACLAccountsMessage"

const (
	fieldAccounts = "accounts"
	fieldMetadata = "metadata"

	// becCodecKey is the envelope key emitted by the Python message
	// serializer; decoders ignore it.
	becCodecKey = "__bec_codec__"
)

// Permissions maps permission categories to their values for one account.
type Permissions map[AccountKey]AccountValue

// Keys returns the present keys in declaration order.
func (p Permissions) Keys() []AccountKey {
	out := make([]AccountKey, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy.
func (p Permissions) Clone() Permissions {
	if p == nil {
		return nil
	}
	out := make(Permissions, len(p))
	for k, v := range p {
		if v.kind == AccountValueList {
			v = AccountValueFromList(v.list)
		}
		out[k] = v
	}
	return out
}

// Accounts maps account identifiers to their permissions.
type Accounts map[string]Permissions

// IDs returns the account identifiers in sorted order.
func (a Accounts) IDs() []string {
	out := make([]string, 0, len(a))
	for id := range a {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy.
func (a Accounts) Clone() Accounts {
	if a == nil {
		return nil
	}
	out := make(Accounts, len(a))
	for id, p := range a {
		out[id] = p.Clone()
	}
	return out
}

// Metadata is the open bag of additional properties. Values hold decoded
// JSON: map[string]any, []any, string, bool, nil and json.Number (or float64
// under NumberFloat64).
type Metadata map[string]any

// ACLAccountsMessage is the message for ACL accounts.
//
// Accounts is required. Metadata is optional, defaults to empty and is left
// out of the encoded form when empty.
type ACLAccountsMessage struct {
	Accounts Accounts
	Metadata Metadata
}

// Builder returns a builder seeded with the fields of m.
func (m ACLAccountsMessage) Builder() *Builder { return BuilderFrom(m) }

// Clone returns a deep copy of m.
func (m ACLAccountsMessage) Clone() ACLAccountsMessage {
	out := ACLAccountsMessage{Accounts: m.Accounts.Clone(), Metadata: Metadata{}}
	for k, v := range m.Metadata {
		out.Metadata[k] = cloneJSONValue(v)
	}
	return out
}

// Equal reports structural equality. Nil and empty maps compare equal.
func (m ACLAccountsMessage) Equal(o ACLAccountsMessage) bool {
	if len(m.Accounts) != len(o.Accounts) || len(m.Metadata) != len(o.Metadata) {
		return false
	}
	for id, p := range m.Accounts {
		q, ok := o.Accounts[id]
		if !ok || len(p) != len(q) {
			return false
		}
		for k, v := range p {
			w, ok := q[k]
			if !ok || !v.Equal(w) {
				return false
			}
		}
	}
	for k, v := range m.Metadata {
		w, ok := o.Metadata[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

func cloneJSONValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneJSONValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneJSONValue(e)
		}
		return out
	default:
		return v
	}
}
