package mvcc

import (
	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
)

const opParseWrite = "ParseWrite"

// ParseWrite decodes a write record.
func ParseWrite(b []byte) (*Write, error) {
	w, _, err := parseWrite(b, nil)
	return w, err
}

// ParseWriteWithTrace decodes a write record and appends one span per field
// consumed to tr. The result is the same as ParseWrite. On error tr is left
// as it was passed in.
func ParseWriteWithTrace(b []byte, tr *Trace) (*Write, error) {
	w, _, err := parseWrite(b, tr)
	return w, err
}

// ParseWritePrefix decodes a write record and also reports how many bytes it
// consumed. Anything after that starts with a tag this reader does not know.
func ParseWritePrefix(b []byte, tr *Trace) (*Write, int, error) {
	return parseWrite(b, tr)
}

type cursor struct {
	buf   []byte
	off   int
	trace *Trace
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) next(n int, field string, method EncodingMethod) []byte {
	b := c.buf[c.off : c.off+n]
	c.trace.add(c.off, n, field, method)
	c.off += n
	return b
}

func parseWrite(b []byte, tr *Trace) (*Write, int, error) {
	mark := tr.size()
	w, n, err := decodeWrite(b, tr)
	if err != nil {
		tr.truncate(mark)
		return nil, 0, err
	}
	return w, n, nil
}

func decodeWrite(b []byte, tr *Trace) (*Write, int, error) {
	c := &cursor{buf: b, trace: tr}

	if c.remaining() == 0 {
		return nil, 0, errors.New(errors.ErrCodeTruncatedInput, "empty input").WithOp(opParseWrite)
	}
	flag := c.buf[c.off]
	writeType, ok := WriteTypeFromFlag(flag)
	if !ok {
		return nil, 0, errors.Errorf(errors.ErrCodeUnknownWriteType,
			"unknown write type flag 0x%02x", flag).WithOp(opParseWrite)
	}
	c.next(1, FieldWriteType, MethodTagByte)

	startTS, n, err := codec.DecodeUvarint(c.buf[c.off:])
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.ErrCodeMalformedVarint, opParseWrite, "bad start_ts")
	}
	c.next(n, FieldStartTS, MethodVarint)

	w := &Write{WriteType: writeType, StartTS: TimeStamp(startTS)}

	for c.remaining() > 0 {
		switch c.buf[c.off] {
		case shortValuePrefix:
			if err := parseShortValue(c, w); err != nil {
				return nil, 0, err
			}
		case flagOverlappedRollback:
			c.next(1, FieldOverlappedRollback, MethodTagByte)
			w.HasOverlappedRollback = true
		case gcFencePrefix:
			if c.remaining() < 1+codec.Uint64Size {
				return nil, 0, errors.Errorf(errors.ErrCodeTruncatedInput,
					"gc fence needs %d bytes, %d remain", codec.Uint64Size, c.remaining()-1).WithOp(opParseWrite)
			}
			c.next(1, FieldGCFenceFlag, MethodTagByte)
			ts, _ := codec.DecodeUint64BE(c.next(codec.Uint64Size, FieldGCFence, MethodBigEndian))
			w.SetGCFence(TimeStamp(ts))
		default:
			// a field from a newer format version; leave it unconsumed
			return w, c.off, nil
		}
	}
	return w, c.off, nil
}

func parseShortValue(c *cursor, w *Write) error {
	if c.remaining() < 2 {
		return errors.New(errors.ErrCodeTruncatedShortValue,
			"short value length missing").WithOp(opParseWrite)
	}
	declared := int(c.buf[c.off+1])
	if c.remaining()-2 < declared {
		return errors.Errorf(errors.ErrCodeTruncatedShortValue,
			"short value declares %d bytes, %d remain", declared, c.remaining()-2).WithOp(opParseWrite)
	}
	c.next(1, FieldShortValueFlag, MethodTagByte)
	c.next(1, FieldShortValueLen, MethodSingleByte)
	value := c.next(declared, FieldShortValue, MethodRawBytes)
	w.shortValue = append(make([]byte, 0, declared), value...)
	return nil
}
