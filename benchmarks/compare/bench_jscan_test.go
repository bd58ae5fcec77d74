//go:build jscan

package compare_test

import (
	"testing"

	"github.com/romshark/jscan"
)

// jscan: iterate every value of the message
func Benchmark_ParseOnly_jscan_Huge(b *testing.B) {
	data := generateHugeACLMessage(cmpHugeN, cmpHugeK)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := jscan.Begin()
		if err := it.Feed(data); err != nil {
			b.Fatal(err)
		}
		for it.Next() {
			_ = it.Value()
		}
		if err := it.Err(); err != nil {
			b.Fatal(err)
		}
	}
}
