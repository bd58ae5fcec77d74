package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/aclmsg"
)

// EnvelopeKey is the BEC codec block carried next to the message fields.
const EnvelopeKey = "__bec_codec__"

// MsgPack is the MessagePack codec used on the BEC wire. Encode adds the
// envelope {"type_name": "ACLAccountsMessage"}; Decode checks it when present.
type MsgPack struct{}

func (MsgPack) Name() string        { return "msgpack" }
func (MsgPack) ContentType() string { return "application/msgpack" }

func (MsgPack) Decode(ctx context.Context, data []byte, opts ...aclmsg.ParseOpt) (aclmsg.ACLAccountsMessage, error) {
	if err := checkSize(data, opts); err != nil {
		return aclmsg.ACLAccountsMessage{}, err
	}
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	v, err := dec.DecodeInterface()
	if err != nil {
		return aclmsg.ACLAccountsMessage{}, parseIssue(err.Error())
	}
	if r.Len() > 0 {
		return aclmsg.ACLAccountsMessage{}, parseIssue("unexpected data after top-level value")
	}
	if err := checkEnvelope(v); err != nil {
		return aclmsg.ACLAccountsMessage{}, err
	}
	return aclmsg.FromValue(ctx, v, opts...)
}

func (MsgPack) Encode(ctx context.Context, m aclmsg.ACLAccountsMessage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wire, err := m.WireValue()
	if err != nil {
		return nil, err
	}
	if md, ok := wire["metadata"]; ok {
		wire["metadata"] = msgpackNumbers(md)
	}
	wire[EnvelopeKey] = map[string]any{"type_name": aclmsg.MessageTypeName}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(wire); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checkEnvelope(v any) error {
	var env any
	switch t := v.(type) {
	case map[string]any:
		env = t[EnvelopeKey]
	case map[any]any:
		env = t[EnvelopeKey]
	}
	if env == nil {
		return nil
	}
	var name any
	switch t := env.(type) {
	case map[string]any:
		name = t["type_name"]
	case map[any]any:
		name = t["type_name"]
	}
	if name != aclmsg.MessageTypeName {
		return aclmsg.AppendIssues(nil, aclmsg.Issue{
			Path:    "/" + EnvelopeKey + "/type_name",
			Code:    aclmsg.CodeInvalidType,
			Message: fmt.Sprintf("envelope names %v, expected %s", name, aclmsg.MessageTypeName),
			Offset:  -1,
		})
	}
	return nil
}

// msgpackNumbers replaces json.Number, which msgpack would encode as a
// string, with native integers or floats.
func msgpackNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return u
		}
		f, _ := t.Float64()
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = msgpackNumbers(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = msgpackNumbers(e)
		}
		return out
	default:
		return v
	}
}

// checkSize applies ParseOpt.MaxBytes to decoders that build the value tree
// before the token engine sees it.
func checkSize(data []byte, opts []aclmsg.ParseOpt) error {
	if len(opts) == 0 {
		return nil
	}
	if limit := opts[len(opts)-1].MaxBytes; limit > 0 && int64(len(data)) > limit {
		return aclmsg.AppendIssues(nil, aclmsg.Issue{Path: "/", Code: aclmsg.CodeTruncated, Message: "max bytes exceeded", Offset: -1})
	}
	return nil
}

func parseIssue(msg string) aclmsg.Issues {
	return aclmsg.AppendIssues(nil, aclmsg.Issue{Path: "/", Code: aclmsg.CodeParseError, Message: msg, Offset: -1})
}
