package aclmsg

import (
	"context"
	"errors"
)

// Codec converts between a wire representation and ACLAccountsMessage.
// Implementations live in the codec package (JSON, YAML, MessagePack).
type Codec interface {
	// Name is the short identifier used by registries and the CLI ("json").
	Name() string
	// ContentType is the media type served and accepted over HTTP.
	ContentType() string
	// Decode parses data under opts and returns the message or Issues.
	Decode(ctx context.Context, data []byte, opts ...ParseOpt) (ACLAccountsMessage, error)
	// Encode renders m in the codec's wire format.
	Encode(ctx context.Context, m ACLAccountsMessage) ([]byte, error)
}

// ErrNilCodec is returned by helpers that are handed a nil Codec.
var ErrNilCodec = errors.New("aclmsg: nil codec")

// Transcode decodes data with from and re-encodes the message with to.
func Transcode(ctx context.Context, from, to Codec, data []byte, opts ...ParseOpt) ([]byte, error) {
	if from == nil || to == nil {
		return nil, ErrNilCodec
	}
	m, err := from.Decode(ctx, data, opts...)
	if err != nil {
		return nil, err
	}
	return to.Encode(ctx, m)
}

// ---- Convenience wrappers ----

// Validate reports whether v, an in-memory JSON-like value, is a valid
// ACLAccountsMessage.
func Validate(ctx context.Context, v any, opts ...ParseOpt) error {
	_, err := FromValue(ctx, v, opts...)
	return err
}

// Is returns true if v conforms to the message shape.
func Is(ctx context.Context, v any) bool {
	return Validate(ctx, v) == nil
}

// SafeUnmarshal decodes data, returning (zero, false) on any error.
func SafeUnmarshal(data []byte) (ACLAccountsMessage, bool) {
	m, err := Unmarshal(data)
	if err != nil {
		return ACLAccountsMessage{}, false
	}
	return m, true
}
