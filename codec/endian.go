package codec

import (
	"encoding/binary"

	"github.com/guileen/keyguess/errors"
)

// Uint64Size is the width of every fixed-width integer field.
const Uint64Size = 8

// ByteOrder selects big or little endian for the fixed-width helpers.
type ByteOrder string

const (
	BigEndian    ByteOrder = "big"
	LittleEndian ByteOrder = "little"
)

func (o ByteOrder) order() (binary.ByteOrder, error) {
	switch o {
	case BigEndian, "":
		return binary.BigEndian, nil
	case LittleEndian:
		return binary.LittleEndian, nil
	}
	return nil, errors.Errorf(errors.ErrCodeValidation, "unknown byte order %q", string(o))
}

// PutUint64BE writes n into the first 8 bytes of buf.
func PutUint64BE(buf []byte, n uint64) {
	binary.BigEndian.PutUint64(buf, n)
}

// PutUint64LE writes n into the first 8 bytes of buf.
func PutUint64LE(buf []byte, n uint64) {
	binary.LittleEndian.PutUint64(buf, n)
}

func EncodeUint64BE(n uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, n)
}

func EncodeUint64LE(n uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, n)
}

// DecodeUint64BE reads a big-endian uint64 from the first 8 bytes of code.
func DecodeUint64BE(code []byte) (uint64, error) {
	if len(code) < Uint64Size {
		return 0, truncated(len(code))
	}
	return binary.BigEndian.Uint64(code), nil
}

// DecodeUint64LE reads a little-endian uint64 from the first 8 bytes of code.
func DecodeUint64LE(code []byte) (uint64, error) {
	if len(code) < Uint64Size {
		return 0, truncated(len(code))
	}
	return binary.LittleEndian.Uint64(code), nil
}

// EncodeUint64 encodes n in the given order.
func EncodeUint64(order ByteOrder, n uint64) ([]byte, error) {
	bo, err := order.order()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, Uint64Size)
	bo.PutUint64(buf, n)
	return buf, nil
}

// DecodeUint64 decodes the first 8 bytes of code in the given order.
func DecodeUint64(order ByteOrder, code []byte) (uint64, error) {
	bo, err := order.order()
	if err != nil {
		return 0, err
	}
	if len(code) < Uint64Size {
		return 0, truncated(len(code))
	}
	return bo.Uint64(code), nil
}

func truncated(have int) error {
	return errors.Errorf(errors.ErrCodeTruncatedInput,
		"fixed-width field needs %d bytes, %d available", Uint64Size, have)
}
