package aclmsg

import (
	"encoding/json"
	"errors"
	"slices"

	j "github.com/goccy/go-json"
)

// AccountValueKind discriminates the alternative held by an AccountValue.
type AccountValueKind uint8

const (
	accountValueUnset AccountValueKind = iota
	AccountValueList                   // ordered sequence of strings
	AccountValueString                 // single string
)

func (k AccountValueKind) String() string {
	switch k {
	case AccountValueList:
		return "array<string>"
	case AccountValueString:
		return "string"
	default:
		return "unset"
	}
}

// AccountValue is the value of one permission entry: either a list of strings
// or a single string. The wire form carries no tag; the alternative is chosen
// by shape when parsing.
type AccountValue struct {
	kind AccountValueKind
	list []string
	str  string
}

// errAccountValueUnset is returned when encoding a zero AccountValue.
var errAccountValueUnset = errors.New("account value holds no variant")

// AccountValueFromList builds a list alternative. The slice is copied; nil
// becomes an empty list.
func AccountValueFromList(v []string) AccountValue {
	out := make([]string, len(v))
	copy(out, v)
	return AccountValue{kind: AccountValueList, list: out}
}

// AccountValueFromString builds a string alternative.
func AccountValueFromString(s string) AccountValue {
	return AccountValue{kind: AccountValueString, str: s}
}

// Kind returns the held alternative.
func (v AccountValue) Kind() AccountValueKind { return v.kind }

// IsZero reports whether v holds no alternative.
func (v AccountValue) IsZero() bool { return v.kind == accountValueUnset }

// AsList returns a copy of the list alternative.
func (v AccountValue) AsList() ([]string, bool) {
	if v.kind != AccountValueList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// AsString returns the string alternative.
func (v AccountValue) AsString() (string, bool) {
	if v.kind != AccountValueString {
		return "", false
	}
	return v.str, true
}

// Values returns the entries as a list regardless of alternative: a string
// alternative yields a single element.
func (v AccountValue) Values() []string {
	switch v.kind {
	case AccountValueList:
		return slices.Clone(v.list)
	case AccountValueString:
		return []string{v.str}
	default:
		return nil
	}
}

// Equal reports whether both values hold the same alternative and contents.
func (v AccountValue) Equal(o AccountValue) bool {
	return v.kind == o.kind && v.str == o.str && slices.Equal(v.list, o.list)
}

// accountValueAlternatives is the ordered trial list used when parsing. A new
// alternative whose shape overlaps an existing one changes which values match.
var accountValueAlternatives = []struct {
	kind AccountValueKind
	try  func(any) (AccountValue, bool)
}{
	{AccountValueList, tryStringList},
	{AccountValueString, tryString},
}

func tryStringList(raw any) (AccountValue, bool) {
	switch t := raw.(type) {
	case []string:
		return AccountValueFromList(t), true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return AccountValue{}, false
			}
			out = append(out, s)
		}
		return AccountValue{kind: AccountValueList, list: out}, true
	}
	return AccountValue{}, false
}

func tryString(raw any) (AccountValue, bool) {
	s, ok := raw.(string)
	if !ok {
		return AccountValue{}, false
	}
	return AccountValueFromString(s), true
}

// ParseAccountValue resolves a decoded JSON value against the alternatives in
// declared order and returns the first structural match.
func ParseAccountValue(raw any) (AccountValue, error) {
	tried := make([]string, 0, len(accountValueAlternatives))
	for _, alt := range accountValueAlternatives {
		if v, ok := alt.try(raw); ok {
			return v, nil
		}
		tried = append(tried, alt.kind.String())
	}
	return AccountValue{}, &NoMatchingVariantError{Tried: tried, Got: jsonShape(raw)}
}

// MarshalJSON writes the held alternative in its native shape.
func (v AccountValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AccountValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return j.Marshal(v.list)
	case AccountValueString:
		return j.Marshal(v.str)
	default:
		return nil, errAccountValueUnset
	}
}

// UnmarshalJSON parses a JSON array of strings or a JSON string.
func (v *AccountValue) UnmarshalJSON(b []byte) error {
	raw, err := decodeJSONValue(b)
	if err != nil {
		return err
	}
	out, err := ParseAccountValue(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// jsonShape names the JSON type of a decoded value for diagnostics.
func jsonShape(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case string:
		return "string"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
