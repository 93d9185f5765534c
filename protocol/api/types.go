package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/mvcc"
	"github.com/guileen/keyguess/storage"
)

// ByteArray marshals as a JSON array of decimals instead of base64.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+len(b)*4)
	out = append(out, '[')
	for i, v := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	return append(out, ']'), nil
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	// a []uint8 target would expect base64
	var wide []uint16
	if err := json.Unmarshal(data, &wide); err != nil {
		return err
	}
	out := make([]byte, len(wide))
	for i, v := range wide {
		if v > 0xFF {
			return fmt.Errorf("byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// Bytes is how every byte string leaves the API.
type Bytes struct {
	Hex     string    `json:"hex"`
	Decimal ByteArray `json:"decimal"`
}

// NewBytes renders b in both output forms.
func NewBytes(b []byte) Bytes {
	if b == nil {
		b = []byte{}
	}
	return Bytes{Hex: hex.EncodeToString(b), Decimal: ByteArray(b)}
}

// InputRequest carries bytes in any notation the input package accepts.
type InputRequest struct {
	Input string `json:"input"`
}

// BytesResponse returns one byte string and the notation the input was read as.
type BytesResponse struct {
	Output   Bytes  `json:"output"`
	Notation string `json:"notation,omitempty"`
}

type VarintEncodeRequest struct {
	Value uint64 `json:"value"`
}

type VarintDecodeResponse struct {
	Value uint64 `json:"value"`
	Width int    `json:"width"`
}

type EndianEncodeRequest struct {
	Value uint64          `json:"value"`
	Order codec.ByteOrder `json:"order"`
}

type EndianDecodeRequest struct {
	Input string          `json:"input"`
	Order codec.ByteOrder `json:"order"`
}

type EndianDecodeResponse struct {
	Value uint64 `json:"value"`
}

type RecordResponse struct {
	Record codec.Record `json:"record"`
	Key    string       `json:"key"`
}

// WriteEncodeRequest describes a write record. ShortValue is in any input
// notation; omit it for a record without one.
type WriteEncodeRequest struct {
	WriteType             mvcc.WriteType `json:"write_type"`
	StartTS               uint64         `json:"start_ts"`
	ShortValue            *string        `json:"short_value,omitempty"`
	HasOverlappedRollback bool           `json:"has_overlapped_rollback"`
	GCFence               *uint64        `json:"gc_fence,omitempty"`
}

type WriteParseResponse struct {
	Write    *mvcc.Write `json:"write"`
	Spans    []mvcc.Span `json:"spans,omitempty"`
	Unparsed int         `json:"unparsed"`
}

type ScanResponse struct {
	Entries []storage.Entry `json:"entries"`
	Count   int             `json:"count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
