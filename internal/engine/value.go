package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// SliceSource replays a fixed token slice.
type SliceSource struct {
	toks []Token
	pos  int
}

// NewSliceSource returns a TokenSource over toks.
func NewSliceSource(toks []Token) *SliceSource { return &SliceSource{toks: toks} }

func (s *SliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *SliceSource) Location() int64 { return -1 }

// ValueTokens flattens an in-memory JSON-like value into tokens. Maps must
// have string keys; object keys are emitted in sorted order. Numbers of any
// Go numeric type become number tokens carrying their shortest decimal text.
func ValueTokens(v any) (*SliceSource, error) {
	var toks []Token
	if err := appendValueTokens(&toks, v); err != nil {
		return nil, err
	}
	return NewSliceSource(toks), nil
}

func appendValueTokens(out *[]Token, v any) error {
	emit := func(t Token) { t.Offset = -1; *out = append(*out, t) }
	switch t := v.(type) {
	case nil:
		emit(Token{Kind: KindNull})
	case string:
		emit(Token{Kind: KindString, String: t})
	case bool:
		emit(Token{Kind: KindBool, Bool: t})
	case json.Number:
		if _, err := strconv.ParseFloat(string(t), 64); err != nil {
			return fmt.Errorf("invalid number %q", string(t))
		}
		emit(Token{Kind: KindNumber, Number: string(t)})
	case float64:
		return appendFloat(out, t, 64)
	case float32:
		return appendFloat(out, float64(t), 32)
	case int, int8, int16, int32, int64:
		emit(Token{Kind: KindNumber, Number: strconv.FormatInt(reflect.ValueOf(t).Int(), 10)})
	case uint, uint8, uint16, uint32, uint64:
		emit(Token{Kind: KindNumber, Number: strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)})
	case []any:
		emit(Token{Kind: KindBeginArray})
		for _, e := range t {
			if err := appendValueTokens(out, e); err != nil {
				return err
			}
		}
		emit(Token{Kind: KindEndArray})
	case []string:
		emit(Token{Kind: KindBeginArray})
		for _, e := range t {
			emit(Token{Kind: KindString, String: e})
		}
		emit(Token{Kind: KindEndArray})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		emit(Token{Kind: KindBeginObject})
		for _, k := range keys {
			emit(Token{Kind: KindKey, String: k})
			if err := appendValueTokens(out, t[k]); err != nil {
				return err
			}
		}
		emit(Token{Kind: KindEndObject})
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return fmt.Errorf("unsupported map key type %T", k)
			}
			m[ks] = e
		}
		return appendValueTokens(out, m)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

func appendFloat(out *[]Token, f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("unsupported number %v", f)
	}
	*out = append(*out, Token{Kind: KindNumber, Number: strconv.FormatFloat(f, 'g', -1, bits), Offset: -1})
	return nil
}
