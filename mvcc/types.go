// Package mvcc parses and serializes the records kept in the write column
// family: one per committed (or rolled back) transaction on a key.
package mvcc

import (
	"strconv"
	"strings"

	"github.com/guileen/keyguess/errors"
)

// TimeStamp is a logical transaction timestamp.
type TimeStamp uint64

// WriteType is the outcome a write record describes.
type WriteType uint8

const (
	WriteTypePut WriteType = iota
	WriteTypeDelete
	WriteTypeLock
	WriteTypeRollback
)

// Wire tags. The Rollback write type and the overlapped-rollback field share
// the byte 'R'; they never appear in the same position.
const (
	flagPut                byte = 'P'
	flagDelete             byte = 'D'
	flagLock               byte = 'L'
	flagRollback           byte = 'R'
	flagOverlappedRollback byte = 'R'
	shortValuePrefix       byte = 'v'
	gcFencePrefix          byte = 'F'
)

// MaxShortValueLen is the longest value that can be inlined in a write record.
const MaxShortValueLen = 255

var writeTypeTable = [...]struct {
	flag byte
	name string
}{
	WriteTypePut:      {flagPut, "Put"},
	WriteTypeDelete:   {flagDelete, "Delete"},
	WriteTypeLock:     {flagLock, "Lock"},
	WriteTypeRollback: {flagRollback, "Rollback"},
}

// WriteTypeFromFlag maps a tag byte to its write type.
func WriteTypeFromFlag(b byte) (WriteType, bool) {
	for t, e := range writeTypeTable {
		if e.flag == b {
			return WriteType(t), true
		}
	}
	return 0, false
}

// Valid reports whether t is one of the four defined write types.
func (t WriteType) Valid() bool {
	return int(t) < len(writeTypeTable)
}

// Flag returns the tag byte for t.
func (t WriteType) Flag() byte {
	if !t.Valid() {
		return 0
	}
	return writeTypeTable[t].flag
}

func (t WriteType) String() string {
	if !t.Valid() {
		return "WriteType(" + strconv.Itoa(int(t)) + ")"
	}
	return writeTypeTable[t].name
}

// MarshalText renders the write type by name.
func (t WriteType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.Errorf(errors.ErrCodeUnknownWriteType, "unknown write type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts a write type name or its single-letter tag.
func (t *WriteType) UnmarshalText(text []byte) error {
	s := string(text)
	for i, e := range writeTypeTable {
		if strings.EqualFold(s, e.name) || (len(s) == 1 && s[0] == e.flag) {
			*t = WriteType(i)
			return nil
		}
	}
	return errors.Errorf(errors.ErrCodeUnknownWriteType, "unknown write type %q", s)
}
