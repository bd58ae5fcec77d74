package aclmsg

//go:generate go tool stringer -type=AccountKey -linecomment -output=accountkey_string.go

// AccountKey is the closed set of permission categories allowed as keys of an
// account's inner map. Variants are ordered by declaration; the zero value is
// not a variant.
type AccountKey int

const (
	AccountKeyCategories AccountKey = iota + 1 // categories
	AccountKeyKeys                             // keys
	AccountKeyChannels                         // channels
	AccountKeyCommands                         // commands
	AccountKeyProfile                          // profile
)

var accountKeys = [...]AccountKey{
	AccountKeyCategories,
	AccountKeyKeys,
	AccountKeyChannels,
	AccountKeyCommands,
	AccountKeyProfile,
}

// AccountKeys returns every variant in declaration order.
func AccountKeys() []AccountKey {
	out := make([]AccountKey, len(accountKeys))
	copy(out, accountKeys[:])
	return out
}

// ParseAccountKey maps a wire string to its variant. Matching is exact and
// case-sensitive.
func ParseAccountKey(wire string) (AccountKey, error) {
	for _, k := range accountKeys {
		if k.String() == wire {
			return k, nil
		}
	}
	return 0, &InvalidEnumValueError{Value: wire}
}

// FormatAccountKey returns the canonical wire string of k.
func FormatAccountKey(k AccountKey) string { return k.String() }

// Valid reports whether k is one of the declared variants.
func (k AccountKey) Valid() bool {
	return k >= AccountKeyCategories && k <= AccountKeyProfile
}

// Less orders variants by declaration.
func (k AccountKey) Less(o AccountKey) bool { return k < o }

// MarshalText implements encoding.TextMarshaler.
func (k AccountKey) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &InvalidEnumValueError{Value: k.String()}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AccountKey) UnmarshalText(b []byte) error {
	v, err := ParseAccountKey(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func accountKeyWireNames() []string {
	out := make([]string, len(accountKeys))
	for i, k := range accountKeys {
		out[i] = k.String()
	}
	return out
}
