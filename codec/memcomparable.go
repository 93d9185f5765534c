package codec

import (
	"github.com/guileen/keyguess/errors"
)

const (
	encGroupSize          = 8
	encMarker        byte = 0xFF
	encodedGroupSize      = encGroupSize + 1
	// smallest valid marker: a group holding no payload bytes
	encMinMarker = encMarker - encGroupSize
)

var encPad [encGroupSize]byte

// EncodedLen returns the length of EncodeBytes for an n byte key.
func EncodedLen(n int) int {
	return (n/encGroupSize + 1) * encodedGroupSize
}

// EncodeBytes encodes key into 9 byte groups: 8 payload bytes padded with
// zeros and a marker byte of 0xFF minus the padding count. The last group is
// never full, so an encoded key sorts after every encoded proper prefix.
func EncodeBytes(key []byte) []byte {
	return AppendEncodedBytes(make([]byte, 0, EncodedLen(len(key))), key)
}

// AppendEncodedBytes appends the memcomparable encoding of key to dst.
func AppendEncodedBytes(dst, key []byte) []byte {
	for len(key) >= encGroupSize {
		dst = append(dst, key[:encGroupSize]...)
		dst = append(dst, encMarker)
		key = key[encGroupSize:]
	}
	fill := encGroupSize - len(key)
	dst = append(dst, key...)
	dst = append(dst, encPad[:fill]...)
	return append(dst, encMarker-byte(fill))
}

// IsEncodedBytes reports whether code is a sequence of well formed groups.
func IsEncodedBytes(code []byte) bool {
	if len(code) == 0 || len(code)%encodedGroupSize != 0 {
		return false
	}
	for i := encGroupSize; i < len(code); i += encodedGroupSize {
		if code[i] < encMinMarker {
			return false
		}
	}
	return true
}

// DecodeBytes reverses EncodeBytes. Input that is not a whole number of
// groups, or that carries a marker below 0xF7, is rejected.
func DecodeBytes(code []byte) ([]byte, error) {
	if !IsEncodedBytes(code) {
		return nil, errors.Errorf(errors.ErrCodeMalformedEncoding,
			"memcomparable input of %d bytes is not a sequence of valid groups", len(code))
	}
	out := make([]byte, 0, len(code)/encodedGroupSize*encGroupSize)
	for i := 0; i < len(code); i += encodedGroupSize {
		out = append(out, decodeGroup(code[i:i+encodedGroupSize])...)
	}
	return out, nil
}

// DecodeBytesPrefix decodes one encoded key from the front of code, stopping
// after the first group that is not full, and returns the bytes that follow.
// Storage keys append a timestamp after the encoded user key; this splits them.
func DecodeBytesPrefix(code []byte) (key, rest []byte, err error) {
	for off := 0; ; off += encodedGroupSize {
		if len(code)-off < encodedGroupSize {
			return nil, nil, errors.Errorf(errors.ErrCodeMalformedEncoding,
				"memcomparable group at offset %d needs %d bytes, %d remain", off, encodedGroupSize, len(code)-off)
		}
		group := code[off : off+encodedGroupSize]
		marker := group[encGroupSize]
		if marker < encMinMarker {
			return nil, nil, errors.Errorf(errors.ErrCodeMalformedEncoding,
				"invalid group marker 0x%02x at offset %d", marker, off+encGroupSize)
		}
		key = append(key, decodeGroup(group)...)
		if marker != encMarker {
			if key == nil {
				key = []byte{}
			}
			return key, code[off+encodedGroupSize:], nil
		}
	}
}

func decodeGroup(group []byte) []byte {
	n := encGroupSize - int(encMarker-group[encGroupSize])
	return group[:n]
}
