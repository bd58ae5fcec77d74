package aclmsg

import (
	"strings"

	eng "github.com/reoring/aclmsg/internal/engine"
	"github.com/reoring/aclmsg/i18n"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef struct {
	parts []string
}

// RootPath returns the document root pointer.
func RootPath() PathRef { return PathRef{} }

// Field appends an object member, escaping '~' and '/' per RFC 6901.
func (p PathRef) Field(name string) PathRef {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)
	return PathRef{parts: append(parts, eng.EscapePointerToken(name))}
}

// Pointer renders the path; the root renders as "/".
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an Issue at this path with a translated message.
func (p PathRef) Issue(code string, cause error, params map[string]any) Issue {
	data := make(map[string]string, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			data[k] = s
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Cause: cause, Offset: -1, Params: params}
}
