package aclmsg

// UnknownPolicy controls how unknown top-level keys are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Drop unknown keys (default).
	UnknownStrict                      // Reject unknown keys with an error.
)

// NumberMode dictates how numbers inside metadata are interpreted.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number (default, lossless).
	NumberFloat64                      // Fast mode (with potential precision loss).
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	Unknown    UnknownPolicy
	FailFast   bool
	// OnWarning receives non-fatal issues (duplicate keys under Warn).
	OnWarning func(Issue)
}
