package codec

import (
	"encoding/binary"
)

const signMask uint64 = 0x8000000000000000

// appendMemComparableInt64 writes v big-endian with the sign bit flipped so
// that signed order matches unsigned byte order.
func appendMemComparableInt64(buf []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(v)^signMask)
}

func readMemComparableInt64(data []byte) (int64, int) {
	if len(data) < 8 {
		return 0, 0
	}
	u := binary.BigEndian.Uint64(data[:8])
	return int64(u ^ signMask), 8
}
