package codec_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/codec"
)

func sample(t *testing.T) aclmsg.ACLAccountsMessage {
	t.Helper()
	m, err := aclmsg.Unmarshal([]byte(`{
		"accounts": {
			"svc1": {"categories": ["+@all"], "keys": "*"},
			"svc2": {"channels": [], "profile": "readonly"}
		},
		"metadata": {"origin": "scan", "n": 3, "ratio": 0.5, "tags": ["a", null, true]}
	}`))
	require.NoError(t, err)
	return m
}

func TestCodecs_RoundTrip(t *testing.T) {
	ctx := context.Background()
	want := sample(t)
	for _, c := range []aclmsg.Codec{codec.JSON{}, codec.JSON{Indent: "  "}, codec.YAML{}, codec.MsgPack{}} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Encode(ctx, want)
			require.NoError(t, err)
			got, err := c.Decode(ctx, b)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "round trip changed the message:\nwant %#v\ngot  %#v", want, got)
		})
	}
}

func TestYAML_EncodeOrder(t *testing.T) {
	b, err := codec.YAML{}.Encode(context.Background(), sample(t))
	require.NoError(t, err)
	s := string(b)
	assert.Less(t, strings.Index(s, "accounts:"), strings.Index(s, "metadata:"))
	assert.Less(t, strings.Index(s, "categories:"), strings.Index(s, "keys:"))
	assert.Less(t, strings.Index(s, "channels: []"), strings.Index(s, "profile: readonly"))
}

func TestYAML_OmitsEmptyMetadata(t *testing.T) {
	m := aclmsg.ACLAccountsMessage{Accounts: aclmsg.Accounts{}}
	b, err := codec.YAML{}.Encode(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "accounts: {}\n", string(b))
}

func TestYAML_Decode(t *testing.T) {
	ctx := context.Background()
	in := "accounts:\n  svc1:\n    commands: [get, set]\n    profile: admin\n"
	m, err := codec.YAML{}.Decode(ctx, []byte(in))
	require.NoError(t, err)
	cmds, ok := m.Accounts["svc1"][aclmsg.AccountKeyCommands].AsList()
	require.True(t, ok)
	assert.Equal(t, []string{"get", "set"}, cmds)

	_, err = codec.YAML{}.Decode(ctx, []byte("accounts: {}\n---\naccounts: {}\n"))
	var iss aclmsg.Issues
	require.True(t, errors.As(err, &iss))
	assert.Equal(t, aclmsg.CodeParseError, iss[0].Code)

	_, err = codec.YAML{}.Decode(ctx, []byte("accounts:\n  svc1:\n    owner: x\n"))
	var enumErr *aclmsg.InvalidEnumValueError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, "owner", enumErr.Value)
}

func TestYAML_DuplicateKeys(t *testing.T) {
	in := []byte("accounts:\n  svc1: {keys: a}\n  svc1: {keys: b}\n")
	_, err := codec.YAML{}.Decode(context.Background(), in)
	require.NoError(t, err)

	_, err = codec.YAML{}.Decode(context.Background(), in, aclmsg.ParseOpt{Strictness: aclmsg.Strictness{OnDuplicateKey: aclmsg.Error}})
	iss, ok := aclmsg.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, aclmsg.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "/accounts/svc1", iss[0].Path)
}

func TestMsgPack_Envelope(t *testing.T) {
	ctx := context.Background()
	b, err := codec.MsgPack{}.Encode(ctx, sample(t))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, msgpack.Unmarshal(b, &raw))
	env, ok := raw[codec.EnvelopeKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, aclmsg.MessageTypeName, env["type_name"])

	raw[codec.EnvelopeKey] = map[string]any{"type_name": "ScanStatusMessage"}
	bad, err := msgpack.Marshal(raw)
	require.NoError(t, err)
	_, err = codec.MsgPack{}.Decode(ctx, bad)
	iss, ok := aclmsg.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "/__bec_codec__/type_name", iss[0].Path)
}

func TestMsgPack_StrictIgnoresEnvelope(t *testing.T) {
	ctx := context.Background()
	b, err := codec.MsgPack{}.Encode(ctx, sample(t))
	require.NoError(t, err)
	_, err = codec.MsgPack{}.Decode(ctx, b, aclmsg.ParseOpt{Unknown: aclmsg.UnknownStrict})
	require.NoError(t, err)
}

func TestMsgPack_Trailing(t *testing.T) {
	b, err := codec.MsgPack{}.Encode(context.Background(), sample(t))
	require.NoError(t, err)
	_, err = codec.MsgPack{}.Decode(context.Background(), append(b, 0xc0))
	require.Error(t, err)
}

func TestCodecs_MaxBytes(t *testing.T) {
	ctx := context.Background()
	for _, c := range []aclmsg.Codec{codec.YAML{}, codec.MsgPack{}} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Encode(ctx, sample(t))
			require.NoError(t, err)

			_, err = c.Decode(ctx, b, aclmsg.ParseOpt{MaxBytes: int64(len(b) - 1)})
			iss, ok := aclmsg.AsIssues(err)
			require.True(t, ok, "expected issues, got %v", err)
			assert.Equal(t, aclmsg.CodeTruncated, iss[0].Code)
			assert.Equal(t, "/", iss[0].Path)

			_, err = c.Decode(ctx, b, aclmsg.ParseOpt{MaxBytes: int64(len(b))})
			assert.NoError(t, err)
		})
	}
}

func TestYAML_AliasExpansionRejected(t *testing.T) {
	var b strings.Builder
	b.WriteString("accounts: {}\nmetadata:\n  l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "  l%d: &l%d [", i, i)
		for k := 0; k < 10; k++ {
			if k > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	_, err := codec.YAML{}.Decode(context.Background(), []byte(b.String()), aclmsg.ParseOpt{MaxBytes: 4096, MaxDepth: 32})
	iss, ok := aclmsg.AsIssues(err)
	require.True(t, ok, "expected issues, got %v", err)
	assert.Equal(t, aclmsg.CodeParseError, iss[0].Code)
}

func TestJSON_Indent(t *testing.T) {
	m := aclmsg.ACLAccountsMessage{Accounts: aclmsg.Accounts{
		"svc1": {aclmsg.AccountKeyKeys: aclmsg.AccountValueFromString("*")},
	}}
	b, err := codec.JSON{Indent: "  "}.Encode(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"accounts\": {\n    \"svc1\": {\n      \"keys\": \"*\"\n    }\n  }\n}\n", string(b))
	assert.True(t, json.Valid(b))
}

func TestRegistry(t *testing.T) {
	c, err := codec.Lookup("YAML")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Name())

	c, err = codec.ForContentType("application/json; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = codec.ForContentType("application/x-msgpack")
	require.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())

	_, err = codec.ForContentType("text/plain")
	require.Error(t, err)
	_, err = codec.Lookup("xml")
	require.ErrorContains(t, err, "json, msgpack, yaml")
}

func TestTranscode(t *testing.T) {
	ctx := context.Background()
	y := []byte("accounts:\n  svc1:\n    keys: '*'\nmetadata:\n  n: 1\n")
	b, err := aclmsg.Transcode(ctx, codec.YAML{}, codec.JSON{}, y)
	require.NoError(t, err)
	assert.JSONEq(t, `{"accounts":{"svc1":{"keys":"*"}},"metadata":{"n":1}}`, string(b))

	_, err = aclmsg.Transcode(ctx, nil, codec.JSON{}, y)
	assert.ErrorIs(t, err, aclmsg.ErrNilCodec)
}
