//go:build jstream

package compare_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/bcicen/jstream"
)

// jstream: stream account entries (depth 2) without building the whole message
func Benchmark_ParseOnly_jstream_Huge(b *testing.B) {
	data := generateHugeACLMessage(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dec := jstream.NewDecoder(bytes.NewReader(data), 2)
		for mv := range dec.Stream() {
			if mv.Value == nil {
				b.Fatal("nil")
			}
		}
		// drain the decoder error if any
		if err := dec.Err(); err != nil && err != io.EOF {
			b.Fatal(err)
		}
	}
}
