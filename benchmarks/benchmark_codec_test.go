package aclmsg_test

import (
	"context"
	"testing"

	"github.com/reoring/aclmsg"
	"github.com/reoring/aclmsg/codec"
)

func benchmarkDecode(b *testing.B, c aclmsg.Codec) {
	ctx := context.Background()
	m, err := aclmsg.Unmarshal(generateACLMessage(1000, 16))
	if err != nil {
		b.Fatal(err)
	}
	data, err := c.Encode(ctx, m)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Decode(ctx, data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Codec_Decode_JSON(b *testing.B)    { benchmarkDecode(b, codec.JSON{}) }
func Benchmark_Codec_Decode_YAML(b *testing.B)    { benchmarkDecode(b, codec.YAML{}) }
func Benchmark_Codec_Decode_MsgPack(b *testing.B) { benchmarkDecode(b, codec.MsgPack{}) }

// Builder with typed values versus decoding the equivalent wire document.
func Benchmark_Builder_Typed(b *testing.B) {
	acc := aclmsg.Accounts{"svc1": {
		aclmsg.AccountKeyCategories: aclmsg.AccountValueFromList([]string{"+@all"}),
		aclmsg.AccountKeyKeys:       aclmsg.AccountValueFromString("*"),
	}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := aclmsg.NewBuilder().Accounts(acc).Build(); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Builder_Untyped(b *testing.B) {
	acc := map[string]any{"svc1": map[string]any{"categories": []any{"+@all"}, "keys": "*"}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := aclmsg.NewBuilder().Accounts(acc).Build(); err != nil {
			b.Fatal(err)
		}
	}
}
