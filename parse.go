package aclmsg

import (
	"context"
	"errors"
	"io"

	eng "github.com/reoring/aclmsg/internal/engine"
	yamlsrc "github.com/reoring/aclmsg/source/yaml"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source
// under the enforcement configured in opts, builds the value tree and decodes
// it into an ACLAccountsMessage.
func ParseFrom(ctx context.Context, src Source, opts ...ParseOpt) (ACLAccountsMessage, error) {
	if err := ctx.Err(); err != nil {
		return ACLAccountsMessage{}, err
	}
	if src == nil {
		return ACLAccountsMessage{}, singleIssue(CodeParseError, "nil source")
	}
	opt := lastOpt(opts)
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return ACLAccountsMessage{}, toIssues(err)
	}
	return decodeMessage(v, opt)
}

// Unmarshal decodes a JSON document with the current JSON driver.
func Unmarshal(data []byte, opts ...ParseOpt) (ACLAccountsMessage, error) {
	return ParseFrom(context.Background(), JSONBytes(data), opts...)
}

// StreamParse decodes a JSON document read from r.
// When MaxBytes is set it enforces the size cap up front, otherwise it
// delegates directly to ParseFrom via the Source driver.
func StreamParse(ctx context.Context, r io.Reader, opts ...ParseOpt) (ACLAccountsMessage, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return ACLAccountsMessage{}, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return ACLAccountsMessage{}, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, JSONReader(r), opts...)
}

// FromValue decodes an in-memory JSON-like value (as produced by
// encoding/json, YAML or MessagePack decoders). Numbers of any Go numeric type
// are normalized to the NumberJSONNumber representation.
func FromValue(ctx context.Context, v any, opts ...ParseOpt) (ACLAccountsMessage, error) {
	src, err := eng.ValueTokens(v)
	if err != nil {
		return ACLAccountsMessage{}, singleIssue(CodeInvalidType, err.Error())
	}
	return ParseFrom(ctx, &engineSourceAdapter{inner: src, numMode: NumberJSONNumber}, opts...)
}

// YAMLDocuments returns one Source per document of a YAML stream. Duplicate
// mapping keys are left to the Strictness of the subsequent parse.
func YAMLDocuments(r io.Reader) ([]Source, error) {
	yr := yamlsrc.NewReader(r, false)
	var out []Source
	for {
		ts, err := yr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, singleIssue(CodeParseError, err.Error())
		}
		out = append(out, &engineSourceAdapter{inner: ts, numMode: NumberJSONNumber})
	}
}

// ---- helpers (parse options, decode, error mapping) ----

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ParseOpt{}
}

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	var sink func(eng.SimpleIssue)
	if opt.OnWarning != nil {
		sink = func(si eng.SimpleIssue) {
			opt.OnWarning(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
		FailFast:    opt.FailFast,
	})
	conv := eng.JSONNumber
	if src.NumberMode() == NumberFloat64 {
		conv = eng.Float64
	}
	v, err := eng.DecodeAny(enforced, conv)
	if err != nil {
		return nil, err
	}
	if _, err := enforced.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, singleIssue(CodeParseError, "unexpected data after top-level value")
		}
		return nil, err
	}
	return v, nil
}

// decodeJSONValue decodes a standalone JSON document into a value tree.
func decodeJSONValue(b []byte) (any, error) {
	v, err := decodeAnyFromSource(JSONBytes(b), ParseOpt{})
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: -1})
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return singleIssue(CodeParseError, "unexpected end of input")
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err, Offset: -1})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg, Offset: -1})
}
