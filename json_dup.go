package aclmsg

import (
	"io"

	eng "github.com/reoring/aclmsg/internal/engine"
)

// DetectJSONDuplicateKeysBytes reports duplicate object keys in a JSON byte
// slice without decoding the message. maxIssues < 0 means unlimited.
func DetectJSONDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	return detectDuplicates(JSONBytes(data), strict, maxIssues)
}

// DetectJSONDuplicateKeysReader is DetectJSONDuplicateKeysBytes over an
// io.Reader. The reader is consumed fully.
func DetectJSONDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	return detectDuplicates(JSONReader(r), strict, maxIssues)
}

func detectDuplicates(src Source, strict Strictness, maxIssues int) (Issues, error) {
	si, err := eng.DetectDuplicateKeys(engineTokenSource(src), toEngineDup(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, toIssues(err)
	}
	return fromEngineIssues(si), nil
}

func fromEngineIssues(si []eng.SimpleIssue) Issues {
	if len(si) == 0 {
		return nil
	}
	out := make(Issues, 0, len(si))
	for _, it := range si {
		out = append(out, Issue{Path: it.Path, Code: it.Code, Message: it.Message, Offset: -1})
	}
	return out
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
