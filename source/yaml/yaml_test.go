package yaml

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	eng "github.com/reoring/aclmsg/internal/engine"
)

func decodeDocs(t *testing.T, in string, strict bool) ([]any, error) {
	t.Helper()
	r := NewReader(strings.NewReader(in), strict)
	var out []any
	for {
		src, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := eng.DecodeAny(src, eng.JSONNumber)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func TestReader_Scalars(t *testing.T) {
	docs, err := decodeDocs(t, `
accounts:
  svc1:
    categories: [+@all, "-@dangerous"]
    keys: "*"
n: 0x10
f: 1.5
b: yes
t: true
z: ~
s: 012abc
`, false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"accounts": map[string]any{"svc1": map[string]any{
			"categories": []any{"+@all", "-@dangerous"},
			"keys":       "*",
		}},
		"n": json.Number("16"),
		"f": json.Number("1.5"),
		"b": "yes",
		"t": true,
		"z": nil,
		"s": "012abc",
	}
	if !reflect.DeepEqual(docs, []any{want}) {
		t.Fatalf("unexpected decode:\nwant %#v\ngot  %#v", want, docs)
	}
}

func TestReader_MultiDocumentAndAliases(t *testing.T) {
	docs, err := decodeDocs(t, "base: &b [x]\ncopy: *b\n---\n- 1\n", false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("want 2 docs, got %d", len(docs))
	}
	first := docs[0].(map[string]any)
	if !reflect.DeepEqual(first["copy"], []any{"x"}) {
		t.Fatalf("alias not resolved: %#v", first)
	}
}

func TestReader_StrictDuplicate(t *testing.T) {
	in := "a: 1\nb: 2\na: 3\n"
	if _, err := decodeDocs(t, in, false); err != nil {
		t.Fatalf("non-strict must accept duplicates: %v", err)
	}
	_, err := decodeDocs(t, in, true)
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dup.Key != "a" || dup.FirstLine != 1 || dup.Line != 3 {
		t.Fatalf("unexpected positions: %+v", dup)
	}
}

func TestReader_Errors(t *testing.T) {
	for _, in := range []string{"? [a]\n: 1\n", "x: .nan\n", "a: [\n"} {
		if _, err := decodeDocs(t, in, false); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

// laughs builds a document whose alias expansion grows tenfold per level.
func laughs(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		prev := "*l" + strconv.Itoa(i-1)
		b.WriteString("l" + strconv.Itoa(i) + ": &l" + strconv.Itoa(i) + " [")
		for k := 0; k < 10; k++ {
			if k > 0 {
				b.WriteString(", ")
			}
			b.WriteString(prev)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

func TestReader_AliasExpansionLimit(t *testing.T) {
	in := laughs(9)
	if len(in) > 1024 {
		t.Fatalf("fixture unexpectedly large: %d bytes", len(in))
	}
	start := time.Now()
	_, err := decodeDocs(t, in, false)
	if !errors.Is(err, ErrAliasExpansion) {
		t.Fatalf("expected ErrAliasExpansion, got %v", err)
	}
	if d := time.Since(start); d > 2*time.Second {
		t.Fatalf("expansion was not cut short: %v", d)
	}

	// modest reuse stays within the limit
	if _, err := decodeDocs(t, laughs(2), false); err != nil {
		t.Fatalf("small alias fan-out must decode: %v", err)
	}
}
