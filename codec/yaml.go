package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/aclmsg"
)

// YAML is the YAML codec. Input must hold exactly one document; duplicate
// mapping keys follow the Strictness of the ParseOpt.
type YAML struct{}

func (YAML) Name() string        { return "yaml" }
func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Decode(ctx context.Context, data []byte, opts ...aclmsg.ParseOpt) (aclmsg.ACLAccountsMessage, error) {
	if err := checkSize(data, opts); err != nil {
		return aclmsg.ACLAccountsMessage{}, err
	}
	docs, err := aclmsg.YAMLDocuments(bytes.NewReader(data))
	if err != nil {
		return aclmsg.ACLAccountsMessage{}, err
	}
	if len(docs) != 1 {
		return aclmsg.ACLAccountsMessage{}, aclmsg.AppendIssues(nil, aclmsg.Issue{
			Path:    "/",
			Code:    aclmsg.CodeParseError,
			Message: fmt.Sprintf("expected one YAML document, got %d", len(docs)),
			Offset:  -1,
		})
	}
	return aclmsg.ParseFrom(ctx, docs[0], opts...)
}

// Encode writes accounts before metadata, account ids sorted and permission
// keys in declaration order.
func (YAML) Encode(ctx context.Context, m aclmsg.ACLAccountsMessage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := messageNode(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func messageNode(m aclmsg.ACLAccountsMessage) (*yaml.Node, error) {
	accounts := mappingNode()
	for _, id := range m.Accounts.IDs() {
		perms := mappingNode()
		p := m.Accounts[id]
		for _, k := range p.Keys() {
			v := p[k]
			if v.IsZero() {
				return nil, fmt.Errorf("codec: encode /accounts/%s/%s: account value holds no variant", id, k)
			}
			appendPair(perms, k.String(), accountValueNode(v))
		}
		appendPair(accounts, id, flowIfEmpty(perms))
	}
	flowIfEmpty(accounts)
	root := mappingNode()
	appendPair(root, "accounts", accounts)
	if len(m.Metadata) > 0 {
		md, err := valueNode(map[string]any(m.Metadata))
		if err != nil {
			return nil, fmt.Errorf("codec: encode /metadata: %w", err)
		}
		appendPair(root, "metadata", md)
	}
	return root, nil
}

func accountValueNode(v aclmsg.AccountValue) *yaml.Node {
	if s, ok := v.AsString(); ok {
		return strNode(s)
	}
	list, _ := v.AsList()
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(list) == 0 {
		seq.Style = yaml.FlowStyle
	}
	for _, s := range list {
		seq.Content = append(seq.Content, strNode(s))
	}
	return seq
}

// valueNode converts a decoded JSON value into a YAML node. Numbers keep
// their literal text.
func valueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return strNode(t), nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: t.String()}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: t.String()}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(t, 'g', -1, 64)}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(t) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, e := range t {
			n, err := valueNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case map[string]any:
		mp := mappingNode()
		if len(t) == 0 {
			mp.Style = yaml.FlowStyle
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			n, err := valueNode(t[k])
			if err != nil {
				return nil, err
			}
			appendPair(mp, k, n)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func mappingNode() *yaml.Node { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }

func flowIfEmpty(n *yaml.Node) *yaml.Node {
	if len(n.Content) == 0 {
		n.Style = yaml.FlowStyle
	}
	return n
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func appendPair(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, strNode(key), v)
}
