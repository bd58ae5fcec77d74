package aclmsg

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType       = "invalid_type"
	CodeRequired          = "required"
	CodeUnknownKey        = "unknown_key"
	CodeDuplicateKey      = "duplicate_key"
	CodeInvalidEnum       = "invalid_enum"
	CodeNoMatchingVariant = "no_matching_variant"
	CodeParseError        = "parse_error"
	CodeTruncated         = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /accounts/svc1/keys).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected shapes, etc.
	Cause   error  // Optional: typed error describing the failure kind.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"value":"owner"}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_enum at /accounts/svc1/owner
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the typed causes so errors.As can reach them.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// InvalidEnumValueError reports a wire string outside the closed AccountKey set.
type InvalidEnumValueError struct {
	Value string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid value %q, expected one of: %s", e.Value, strings.Join(accountKeyWireNames(), ", "))
}

// NoMatchingVariantError reports a union value that matched none of the
// declared alternatives. Tried lists the alternatives in trial order and Got
// names the JSON shape that was observed.
type NoMatchingVariantError struct {
	Tried []string
	Got   string
}

func (e *NoMatchingVariantError) Error() string {
	return fmt.Sprintf("data did not match any variant (tried %s), got %s", strings.Join(e.Tried, ", "), e.Got)
}

// MissingRequiredFieldError reports an absent required field.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return "no value supplied for " + e.Field
}

// FieldConversionError reports a builder value that failed its conversion.
type FieldConversionError struct {
	Field string
	Cause error
}

func (e *FieldConversionError) Error() string {
	return fmt.Sprintf("error converting supplied value for %s: %v", e.Field, e.Cause)
}

func (e *FieldConversionError) Unwrap() error { return e.Cause }

// ConversionError is returned by Builder.Build and wraps the first field error
// in declared order.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string { return e.Err.Error() }

func (e *ConversionError) Unwrap() error { return e.Err }

// Field names the builder field whose error was reported.
func (e *ConversionError) Field() string {
	var mr *MissingRequiredFieldError
	if errors.As(e.Err, &mr) {
		return mr.Field
	}
	var fc *FieldConversionError
	if errors.As(e.Err, &fc) {
		return fc.Field
	}
	return ""
}
