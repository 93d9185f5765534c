//go:build bench
// +build bench

package codec

import (
	"bytes"
	"testing"
)

func BenchmarkEncodeBytes(b *testing.B) {
	benchmarks := []struct {
		name string
		key  []byte
	}{
		{"small", []byte("user:123")},
		{"medium", bytes.Repeat([]byte("k"), 100)},
		{"large", bytes.Repeat([]byte("k"), 1000)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = EncodeBytes(bm.key)
			}
		})
	}
}

func BenchmarkDecodeBytes(b *testing.B) {
	encoded := EncodeBytes(bytes.Repeat([]byte("k"), 100))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeBytes(encoded); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseRecord(b *testing.B) {
	code := EncodeRecord(Record{TableID: 53, RowID: 1})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseRecord(code); err != nil {
			b.Fatal(err)
		}
	}
}
