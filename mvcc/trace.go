package mvcc

import "fmt"

// EncodingMethod names how a traced field was laid out in the input.
type EncodingMethod uint8

const (
	MethodTagByte EncodingMethod = iota
	MethodSingleByte
	MethodRawBytes
	MethodBigEndian
	MethodVarint
)

var methodNames = [...]string{
	MethodTagByte:    "tag-byte",
	MethodSingleByte: "single-byte",
	MethodRawBytes:   "raw-bytes",
	MethodBigEndian:  "big-endian",
	MethodVarint:     "varint",
}

func (m EncodingMethod) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("EncodingMethod(%d)", uint8(m))
}

func (m EncodingMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *EncodingMethod) UnmarshalText(text []byte) error {
	for i, name := range methodNames {
		if name == string(text) {
			*m = EncodingMethod(i)
			return nil
		}
	}
	return fmt.Errorf("unknown encoding method %q", text)
}

// Field names used in spans.
const (
	FieldWriteType          = "write_type"
	FieldStartTS            = "start_ts"
	FieldShortValueFlag     = "short_value_flag"
	FieldShortValueLen      = "short_value_len"
	FieldShortValue         = "short_value"
	FieldOverlappedRollback = "overlapped_rollback"
	FieldGCFenceFlag        = "gc_fence_flag"
	FieldGCFence            = "gc_fence"
)

// Span records which bytes of the input produced one field.
type Span struct {
	Offset int            `json:"offset"`
	Width  int            `json:"width"`
	Field  string         `json:"field"`
	Method EncodingMethod `json:"method"`
}

// End is the offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Width
}

// Trace collects spans while a record is parsed. A nil *Trace records nothing.
type Trace struct {
	Spans []Span `json:"spans"`
}

func (t *Trace) add(offset, width int, field string, method EncodingMethod) {
	if t == nil {
		return
	}
	t.Spans = append(t.Spans, Span{Offset: offset, Width: width, Field: field, Method: method})
}

func (t *Trace) size() int {
	if t == nil {
		return 0
	}
	return len(t.Spans)
}

func (t *Trace) truncate(n int) {
	if t != nil && len(t.Spans) > n {
		t.Spans = t.Spans[:n]
	}
}

// Reset drops collected spans so the trace can be reused.
func (t *Trace) Reset() {
	if t != nil {
		t.Spans = t.Spans[:0]
	}
}

// Covered returns how many leading input bytes the spans account for.
func (t *Trace) Covered() int {
	if t == nil || len(t.Spans) == 0 {
		return 0
	}
	return t.Spans[len(t.Spans)-1].End()
}
