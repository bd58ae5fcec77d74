package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/aclmsg/internal/engine"
)

// go-json's Decoder.Token does not check separators, so every document is
// validated as a whole before it is tokenized.
type source struct {
	r          io.Reader
	data       []byte
	dec        *j.Decoder
	err        error
	frames     eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// The reader is consumed in full on the first NextToken call.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{r: r, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource {
	if b == nil {
		b = []byte{}
	}
	return &source{data: b, lastOffset: -1}
}

func (s *source) prepare() error {
	if s.dec != nil || s.err != nil {
		return s.err
	}
	if s.data == nil {
		b, err := io.ReadAll(s.r)
		if err != nil {
			s.err = err
			return err
		}
		s.data = b
	}
	if len(bytes.TrimSpace(s.data)) == 0 {
		s.err = io.EOF
		return s.err
	}
	if !j.Valid(s.data) {
		s.err = syntaxError(s.data)
		return s.err
	}
	s.dec = j.NewDecoder(bytes.NewReader(s.data))
	s.dec.UseNumber()
	return nil
}

// syntaxError describes why data failed validation.
func syntaxError(data []byte) error {
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return err
	}
	return ErrInvalidJSON
}

// ErrInvalidJSON is returned for input that is not a single well-formed JSON value.
var ErrInvalidJSON = errors.New("invalid JSON")

func (s *source) NextToken() (eng.Token, error) {
	if err := s.prepare(); err != nil {
		return eng.Token{}, err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	out := eng.Token{Offset: s.lastOffset}

	switch v := tok.(type) {
	case j.Delim:
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
	case j.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		out.Kind = eng.KindNull
	}
	s.frames.Value()
	return out, nil
}

func (s *source) Location() int64 { return s.lastOffset }
