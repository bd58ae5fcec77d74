// Package middleware decodes ACLAccountsMessage request bodies at HTTP
// boundaries. Framework adapters live in the gin and echo submodules.
package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	j "github.com/goccy/go-json"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/codec"
)

// DefaultMaxBytes caps request bodies when Options.MaxBytes is zero.
const DefaultMaxBytes int64 = 1 << 20

type ctxKeyMessage struct{}

// ContextWithMessage attaches a decoded message to the context.
func ContextWithMessage(ctx context.Context, m aclmsg.ACLAccountsMessage) context.Context {
	return context.WithValue(ctx, ctxKeyMessage{}, m)
}

// MessageFromContext retrieves the message stored by ContextWithMessage.
func MessageFromContext(ctx context.Context) (aclmsg.ACLAccountsMessage, bool) {
	m, ok := ctx.Value(ctxKeyMessage{}).(aclmsg.ACLAccountsMessage)
	return m, ok
}

// DefaultParseOpt returns a recommended default for HTTP boundaries.
// - Duplicate keys are errors
// - Unknown top-level keys are rejected
func DefaultParseOpt() aclmsg.ParseOpt {
	return aclmsg.ParseOpt{
		Strictness: aclmsg.Strictness{OnDuplicateKey: aclmsg.Error},
		Unknown:    aclmsg.UnknownStrict,
		MaxDepth:   32,
	}
}

// Options configures Decode. The zero value uses codec.Default,
// DefaultParseOpt and DefaultMaxBytes.
type Options struct {
	Registry *codec.Registry
	ParseOpt *aclmsg.ParseOpt
	MaxBytes int64
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = codec.Default
	}
	if o.ParseOpt == nil {
		opt := DefaultParseOpt()
		o.ParseOpt = &opt
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	return o
}

// Decode returns middleware that decodes the request body with the codec
// selected by Content-Type (JSON when absent), stores the message in the
// request context, and answers 400 with an issues payload on failure.
func Decode(o Options) func(http.Handler) http.Handler {
	o = o.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m, status, err := DecodeRequest(r, o)
			if err != nil {
				WriteError(w, status, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithMessage(r.Context(), m)))
		})
	}
}

// DecodeRequest decodes r's body under o and returns the HTTP status to use
// when it fails.
func DecodeRequest(r *http.Request, o Options) (aclmsg.ACLAccountsMessage, int, error) {
	o = o.withDefaults()
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		ct = codec.JSON{}.ContentType()
	}
	c, err := o.Registry.ForContentType(ct)
	if err != nil {
		return aclmsg.ACLAccountsMessage{}, http.StatusUnsupportedMediaType, err
	}
	body, err := readBody(r, o.MaxBytes)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return aclmsg.ACLAccountsMessage{}, http.StatusRequestEntityTooLarge, err
		}
		return aclmsg.ACLAccountsMessage{}, http.StatusBadRequest, err
	}
	m, err := c.Decode(r.Context(), body, *o.ParseOpt)
	if err != nil {
		return aclmsg.ACLAccountsMessage{}, http.StatusBadRequest, err
	}
	return m, http.StatusOK, nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(nil, r.Body, limit))
}

// IssuePayload is the JSON shape of one issue in error responses.
type IssuePayload struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []aclmsg.Issue) map[string]any {
	out := make([]IssuePayload, len(issues))
	for i, it := range issues {
		out[i] = IssuePayload{Path: it.Path, Code: it.Code, Message: it.Message, Hint: it.Hint}
	}
	return map[string]any{"issues": out}
}

// WriteError writes err as a JSON body: an issues payload for Issues, an
// {"error": ...} object otherwise.
func WriteError(w http.ResponseWriter, status int, err error) {
	var body map[string]any
	if iss, ok := aclmsg.AsIssues(err); ok {
		body = ErrorPayload(iss)
	} else {
		body = map[string]any{"error": err.Error()}
	}
	b, mErr := j.Marshal(body)
	if mErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// WriteMessage encodes m with the codec matching the request's Accept header
// (JSON when absent or unknown).
func WriteMessage(w http.ResponseWriter, r *http.Request, status int, m aclmsg.ACLAccountsMessage) {
	var c aclmsg.Codec = codec.JSON{}
	if accept := r.Header.Get("Accept"); accept != "" && accept != "*/*" {
		if found, err := codec.ForContentType(accept); err == nil {
			c = found
		}
	}
	b, err := c.Encode(r.Context(), m)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
