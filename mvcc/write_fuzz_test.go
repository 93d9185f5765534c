//go:build fuzz

package mvcc

import (
	"testing"
)

func FuzzParseWrite(f *testing.F) {
	f.Add([]byte{80, 0, 118, 1, 0})
	f.Add([]byte{'R', 1, 'R', 'F', 0, 0, 0, 0, 0, 0, 0, 1})
	f.Add([]byte{'D', 0x80})

	f.Fuzz(func(t *testing.T, data []byte) {
		var tr Trace
		w, n, err := ParseWritePrefix(data, &tr)
		if err != nil {
			return
		}
		if n != tr.Covered() {
			t.Fatalf("consumed %d bytes but spans cover %d", n, tr.Covered())
		}
		again, err := ParseWrite(w.ToBytes())
		if err != nil {
			t.Fatalf("re-parse of %x failed: %v", w.ToBytes(), err)
		}
		if !w.Equal(again) {
			t.Fatalf("round trip mismatch: %+v vs %+v", w, again)
		}
	})
}
