// Package codec provides wire-format codecs for ACLAccountsMessage and a
// registry that selects them by name or content type.
//
// Built-in codecs:
//
//   - json    - JSON (application/json)
//   - yaml    - YAML (application/yaml)
//   - msgpack - MessagePack with the BEC envelope (application/msgpack)
package codec

import (
	"bytes"
	"context"

	j "github.com/goccy/go-json"

	"github.com/reoring/aclmsg"
)

// JSON is the JSON codec. When Indent is non-empty Encode pretty-prints.
type JSON struct {
	Indent string
}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (c JSON) Decode(ctx context.Context, data []byte, opts ...aclmsg.ParseOpt) (aclmsg.ACLAccountsMessage, error) {
	return aclmsg.ParseFrom(ctx, aclmsg.JSONBytes(data), opts...)
}

func (c JSON) Encode(ctx context.Context, m aclmsg.ACLAccountsMessage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := aclmsg.Marshal(m)
	if err != nil || c.Indent == "" {
		return b, err
	}
	var buf bytes.Buffer
	if err := j.Indent(&buf, b, "", c.Indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
