package aclmsg

import (
	"context"
	"encoding/json"
	"fmt"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/aclmsg/internal/engine"
)

// slot holds either a converted field value or the error recorded for it.
type slot[T any] struct {
	value T
	err   error
}

// Builder assembles an ACLAccountsMessage field by field. Setters never fail:
// conversion errors are stored and reported by Build, which checks fields in
// declared order (accounts, then metadata) and returns the first error.
type Builder struct {
	accounts slot[Accounts]
	metadata slot[Metadata]
}

// NewBuilder returns a builder with accounts unset and metadata empty.
func NewBuilder() *Builder {
	return &Builder{
		accounts: slot[Accounts]{err: &MissingRequiredFieldError{Field: fieldAccounts}},
		metadata: slot[Metadata]{value: Metadata{}},
	}
}

// BuilderFrom returns a builder holding every field of m.
func BuilderFrom(m ACLAccountsMessage) *Builder {
	md := m.Metadata
	if md == nil {
		md = Metadata{}
	}
	return &Builder{
		accounts: slot[Accounts]{value: m.Accounts},
		metadata: slot[Metadata]{value: md},
	}
}

// Accounts sets the accounts field. Accepted values are Accounts,
// map[string]Permissions, map[string]map[AccountKey]AccountValue, JSON bytes,
// or any value whose JSON encoding has the wire shape of accounts.
func (b *Builder) Accounts(v any) *Builder {
	acc, err := convertAccounts(v)
	if err != nil {
		b.accounts = slot[Accounts]{err: &FieldConversionError{Field: fieldAccounts, Cause: err}}
		return b
	}
	b.accounts = slot[Accounts]{value: acc}
	return b
}

// Metadata sets the metadata field. Accepted values are Metadata,
// map[string]any, JSON bytes, or any value whose JSON encoding is an object.
// Values are canonicalized to their decoded JSON form.
func (b *Builder) Metadata(v any) *Builder {
	md, err := convertMetadata(v)
	if err != nil {
		b.metadata = slot[Metadata]{err: &FieldConversionError{Field: fieldMetadata, Cause: err}}
		return b
	}
	b.metadata = slot[Metadata]{value: md}
	return b
}

// Err returns the error currently recorded for the named field, or nil.
func (b *Builder) Err(field string) error {
	switch field {
	case fieldAccounts:
		return b.accounts.err
	case fieldMetadata:
		return b.metadata.err
	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

// Errors returns every recorded field error in declared order.
func (b *Builder) Errors() []error {
	var out []error
	for _, err := range []error{b.accounts.err, b.metadata.err} {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Build materializes the message or returns a *ConversionError wrapping the
// first field error in declared order.
func (b *Builder) Build() (ACLAccountsMessage, error) {
	if b.accounts.err != nil {
		return ACLAccountsMessage{}, &ConversionError{Err: b.accounts.err}
	}
	if b.metadata.err != nil {
		return ACLAccountsMessage{}, &ConversionError{Err: b.metadata.err}
	}
	return ACLAccountsMessage{Accounts: b.accounts.value, Metadata: b.metadata.value}, nil
}

func convertAccounts(v any) (Accounts, error) {
	var acc Accounts
	switch t := v.(type) {
	case Accounts:
		acc = t.Clone()
	case map[string]Permissions:
		acc = Accounts(t).Clone()
	case map[string]map[AccountKey]AccountValue:
		acc = make(Accounts, len(t))
		for id, p := range t {
			acc[id] = Permissions(p).Clone()
		}
	case nil:
		return nil, fmt.Errorf("invalid type: null, expected object")
	default:
		raw, err := canonicalJSON(v)
		if err != nil {
			return nil, err
		}
		d := &decoder{}
		acc = d.accounts(raw, RootPath())
		if len(d.issues) > 0 {
			return nil, d.issues
		}
		return acc, nil
	}
	for id, p := range acc {
		if p == nil {
			acc[id] = Permissions{}
			continue
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
	}
	return acc, nil
}

func convertMetadata(v any) (Metadata, error) {
	if v == nil {
		return nil, fmt.Errorf("invalid type: null, expected object")
	}
	if md, ok := v.(Metadata); ok {
		v = map[string]any(md)
	}
	raw, err := canonicalJSON(v)
	if err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid type: %s, expected object", jsonShape(raw))
	}
	return Metadata(m), nil
}

// canonicalJSON turns v into the value tree the JSON decoder would produce
// for its encoding. JSON-like trees are walked directly; other values go
// through go-json.
func canonicalJSON(v any) (any, error) {
	var src eng.TokenSource
	switch t := v.(type) {
	case []byte:
		return decodeJSONValue(t)
	case json.RawMessage:
		return decodeJSONValue(t)
	case map[string]any, []any, map[any]any:
		vs, err := eng.ValueTokens(t)
		if err != nil {
			return nil, err
		}
		src = vs
	default:
		b, err := j.MarshalContext(context.Background(), v)
		if err != nil {
			return nil, err
		}
		return decodeJSONValue(b)
	}
	return eng.DecodeAny(src, eng.JSONNumber)
}
