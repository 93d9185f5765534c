package mvcc

import (
	"bytes"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
)

// Write is a record of the write column family.
//
// Wire format:
//
//	[type flag][start_ts varint]
//	  ['v' len(1) value]   short value, optional
//	  ['R']                overlapped rollback, optional
//	  ['F' ts(8, BE)]      gc fence, optional
//
// Optional fields appear in that order. A reader stops at the first tag it
// does not know, so records written by newer versions still parse.
type Write struct {
	WriteType             WriteType
	StartTS               TimeStamp
	HasOverlappedRollback bool
	GCFence               *TimeStamp

	shortValue []byte
}

// NewWrite builds a write record. A nil shortValue means none.
func NewWrite(writeType WriteType, startTS TimeStamp, shortValue []byte) (*Write, error) {
	w := &Write{WriteType: writeType, StartTS: startTS}
	if !writeType.Valid() {
		return nil, errors.Errorf(errors.ErrCodeUnknownWriteType, "unknown write type %d", uint8(writeType))
	}
	if shortValue != nil {
		if err := w.SetShortValue(shortValue); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// ShortValue returns the inlined value, or nil when there is none.
func (w *Write) ShortValue() []byte {
	return w.shortValue
}

// HasShortValue distinguishes an empty short value from an absent one.
func (w *Write) HasShortValue() bool {
	return w.shortValue != nil
}

// SetShortValue inlines v; it must fit the one byte length prefix.
func (w *Write) SetShortValue(v []byte) error {
	if len(v) > MaxShortValueLen {
		return errors.Errorf(errors.ErrCodeValidation,
			"short value of %d bytes exceeds %d", len(v), MaxShortValueLen)
	}
	w.shortValue = append(make([]byte, 0, len(v)), v...)
	return nil
}

// ClearShortValue removes the inlined value.
func (w *Write) ClearShortValue() {
	w.shortValue = nil
}

// SetGCFence sets the gc fence timestamp.
func (w *Write) SetGCFence(ts TimeStamp) {
	w.GCFence = &ts
}

// Equal compares two records field by field.
func (w *Write) Equal(o *Write) bool {
	if w == nil || o == nil {
		return w == o
	}
	if w.WriteType != o.WriteType || w.StartTS != o.StartTS ||
		w.HasOverlappedRollback != o.HasOverlappedRollback {
		return false
	}
	if w.HasShortValue() != o.HasShortValue() || !bytes.Equal(w.shortValue, o.shortValue) {
		return false
	}
	if (w.GCFence == nil) != (o.GCFence == nil) {
		return false
	}
	return w.GCFence == nil || *w.GCFence == *o.GCFence
}

// Validate reports whether ToBytes can represent w faithfully.
func (w *Write) Validate() error {
	if !w.WriteType.Valid() {
		return errors.Errorf(errors.ErrCodeUnknownWriteType, "unknown write type %d", uint8(w.WriteType))
	}
	if len(w.shortValue) > MaxShortValueLen {
		return errors.Errorf(errors.ErrCodeValidation,
			"short value of %d bytes exceeds %d", len(w.shortValue), MaxShortValueLen)
	}
	return nil
}

// EncodedLen returns len(w.ToBytes()).
func (w *Write) EncodedLen() int {
	n := 1 + len(codec.EncodeUvarint(uint64(w.StartTS)))
	if w.shortValue != nil {
		n += 2 + len(w.shortValue)
	}
	if w.HasOverlappedRollback {
		n++
	}
	if w.GCFence != nil {
		n += 1 + codec.Uint64Size
	}
	return n
}

// ToBytes serializes w. Call Validate first for records not built through
// NewWrite, SetShortValue or ParseWrite.
func (w *Write) ToBytes() []byte {
	buf := make([]byte, 0, w.EncodedLen())
	buf = append(buf, w.WriteType.Flag())
	buf = append(buf, codec.EncodeUvarint(uint64(w.StartTS))...)
	if w.shortValue != nil {
		buf = append(buf, shortValuePrefix, byte(len(w.shortValue)))
		buf = append(buf, w.shortValue...)
	}
	if w.HasOverlappedRollback {
		buf = append(buf, flagOverlappedRollback)
	}
	if w.GCFence != nil {
		buf = append(buf, gcFencePrefix)
		buf = append(buf, codec.EncodeUint64BE(uint64(*w.GCFence))...)
	}
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (w *Write) MarshalBinary() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w.ToBytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (w *Write) UnmarshalBinary(data []byte) error {
	parsed, err := ParseWrite(data)
	if err != nil {
		return err
	}
	*w = *parsed
	return nil
}
