package codec

import (
	"encoding/binary"

	"github.com/guileen/keyguess/errors"
)

// MaxVarintLen64 is the longest varint a uint64 can need.
const MaxVarintLen64 = binary.MaxVarintLen64

// EncodeUvarint encodes n as an unsigned LEB128 varint of minimal length.
func EncodeUvarint(n uint64) []byte {
	return binary.AppendUvarint(make([]byte, 0, MaxVarintLen64), n)
}

// DecodeUvarint decodes a varint from the front of code and reports how many
// bytes it consumed.
func DecodeUvarint(code []byte) (uint64, int, error) {
	v, n := binary.Uvarint(code)
	switch {
	case n == 0:
		return 0, 0, errors.Errorf(errors.ErrCodeMalformedVarint,
			"varint unterminated after %d bytes", len(code))
	case n < 0:
		return 0, 0, errors.Errorf(errors.ErrCodeMalformedVarint,
			"varint overflows 64 bits after %d bytes", -n)
	}
	return v, n, nil
}
