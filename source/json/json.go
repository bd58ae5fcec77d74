package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/aclmsg/internal/engine"
)

type jsonSource struct {
	dec        *json.Decoder
	frames     eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource backed by encoding/json.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource backed by encoding/json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	out := eng.Token{Offset: s.lastOffset}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.frames.Open(true)
			out.Kind = eng.KindBeginObject
		case '[':
			s.frames.Open(false)
			out.Kind = eng.KindBeginArray
		case '}':
			s.frames.Close()
			out.Kind = eng.KindEndObject
		case ']':
			s.frames.Close()
			out.Kind = eng.KindEndArray
		}
		return out, nil
	case string:
		if s.frames.Key() {
			out.Kind, out.String = eng.KindKey, v
			return out, nil
		}
		out.Kind, out.String = eng.KindString, v
	case bool:
		out.Kind, out.Bool = eng.KindBool, v
	case json.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		out.Kind = eng.KindNull
	}
	s.frames.Value()
	return out, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
