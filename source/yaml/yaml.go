package yaml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/aclmsg/internal/engine"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// ErrAliasExpansion reports a document whose aliases expand far beyond its
// own size.
var ErrAliasExpansion = errors.New("YAML alias expansion exceeds limit")

const (
	minExpandedTokens   = 1 << 14
	aliasExpansionRatio = 10
)

// Reader turns a multi-document YAML stream into JSON token sources, one per
// document. In strict mode duplicate mapping keys fail with *DuplicateKeyError;
// otherwise they are emitted and left to the caller's enforcement.
type Reader struct {
	dec    *yaml.Decoder
	strict bool
	limit  int
}

// NewReader constructs a Reader.
func NewReader(r io.Reader, strict bool) *Reader {
	return &Reader{dec: yaml.NewDecoder(r), strict: strict}
}

// Next returns the next document as a token source. It returns io.EOF when
// the stream is exhausted.
func (r *Reader) Next() (eng.TokenSource, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	r.limit = max(minExpandedTokens, countNodes(&root)*aliasExpansionRatio)
	var toks []eng.Token
	if err := r.appendNode(&toks, &root); err != nil {
		return nil, err
	}
	return eng.NewSliceSource(toks), nil
}

func (r *Reader) appendNode(out *[]eng.Token, n *yaml.Node) error {
	emit := func(t eng.Token) { t.Offset = -1; *out = append(*out, t) }
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			emit(eng.Token{Kind: eng.KindNull})
			return nil
		}
		return r.appendNode(out, n.Content[0])
	case yaml.AliasNode:
		if len(*out) > r.limit {
			return ErrAliasExpansion
		}
		if err := r.appendNode(out, n.Alias); err != nil {
			return err
		}
		if len(*out) > r.limit {
			return ErrAliasExpansion
		}
	case yaml.MappingNode:
		emit(eng.Token{Kind: eng.KindBeginObject})
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("unsupported YAML key at %d:%d: keys must be scalars", k.Line, k.Column)
			}
			if pos, dup := first[k.Value]; dup && r.strict {
				return &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[k.Value] = [2]int{k.Line, k.Column}
			emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := r.appendNode(out, v); err != nil {
				return err
			}
		}
		emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := r.appendNode(out, c); err != nil {
				return err
			}
		}
		emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		t, err := scalarToken(n)
		if err != nil {
			return err
		}
		emit(t)
	default:
		emit(eng.Token{Kind: eng.KindNull})
	}
	return nil
}

// countNodes counts the nodes of a document without following aliases.
func countNodes(n *yaml.Node) int {
	c := 1
	for _, ch := range n.Content {
		c += countNodes(ch)
	}
	return c
}

func scalarToken(n *yaml.Node) (eng.Token, error) {
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindBool, Bool: b}, nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)}, nil
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatUint(u, 10)}, nil
		}
		return eng.Token{Kind: eng.KindString, String: n.Value}, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return eng.Token{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return eng.Token{}, fmt.Errorf("unsupported YAML number %q at %d:%d", n.Value, n.Line, n.Column)
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	default:
		return eng.Token{Kind: eng.KindString, String: n.Value}, nil
	}
}
