// Package inspect guesses what a raw byte string is by running every decoder
// over it and keeping the interpretations that succeed.
package inspect

import (
	"encoding/hex"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/mvcc"
)

// Interpretation names, in the order a Report lists them.
const (
	KindRecord        = "record"
	KindIndex         = "index"
	KindMemcomparable = "memcomparable"
	KindWriteKey      = "write_key"
	KindWrite         = "write"
	KindVarint        = "varint"
)

// RecordGuess reads the input as a row key.
type RecordGuess struct {
	OK     bool          `json:"ok"`
	Record *codec.Record `json:"record,omitempty"`
	// Trailing counts bytes after the row id, which a plain row key lacks.
	Trailing int    `json:"trailing,omitempty"`
	Error    string `json:"error,omitempty"`
}

// IndexGuess reads the input as an index key.
type IndexGuess struct {
	OK      bool   `json:"ok"`
	TableID int64  `json:"table_id,omitempty"`
	IndexID int64  `json:"index_id,omitempty"`
	Values  string `json:"values,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MemcomparableGuess reads the input as a memcomparable encoded key,
// possibly followed by other bytes.
type MemcomparableGuess struct {
	OK      bool   `json:"ok"`
	Decoded string `json:"decoded,omitempty"`
	// Rest is the hex of whatever follows the encoded key.
	Rest   string        `json:"rest,omitempty"`
	Record *codec.Record `json:"record,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// WriteKeyGuess reads the input as a write column family key.
type WriteKeyGuess struct {
	OK       bool           `json:"ok"`
	UserKey  string         `json:"user_key,omitempty"`
	CommitTS mvcc.TimeStamp `json:"commit_ts,omitempty"`
	Record   *codec.Record  `json:"record,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// WriteGuess reads the input as a write record.
type WriteGuess struct {
	OK    bool        `json:"ok"`
	Write *mvcc.Write `json:"write,omitempty"`
	Spans []mvcc.Span `json:"spans,omitempty"`
	// Unparsed counts trailing bytes that start with an unknown field tag.
	Unparsed int    `json:"unparsed,omitempty"`
	Error    string `json:"error,omitempty"`
}

// VarintGuess reads a varint from the front of the input.
type VarintGuess struct {
	OK    bool   `json:"ok"`
	Value uint64 `json:"value,omitempty"`
	Width int    `json:"width,omitempty"`
	Error string `json:"error,omitempty"`
}

// Report holds every interpretation attempted for one input.
type Report struct {
	Hex           string             `json:"hex"`
	Len           int                `json:"len"`
	Record        RecordGuess        `json:"record"`
	Index         IndexGuess         `json:"index"`
	Memcomparable MemcomparableGuess `json:"memcomparable"`
	WriteKey      WriteKeyGuess      `json:"write_key"`
	Write         WriteGuess         `json:"write"`
	Varint        VarintGuess        `json:"varint"`
}

// Matches lists the kinds that decoded successfully.
func (r *Report) Matches() []string {
	var out []string
	for _, m := range []struct {
		kind string
		ok   bool
	}{
		{KindRecord, r.Record.OK},
		{KindIndex, r.Index.OK},
		{KindMemcomparable, r.Memcomparable.OK},
		{KindWriteKey, r.WriteKey.OK},
		{KindWrite, r.Write.OK},
		{KindVarint, r.Varint.OK},
	} {
		if m.ok {
			out = append(out, m.kind)
		}
	}
	return out
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithoutTrace skips span collection for write records.
func WithoutTrace() Option {
	return func(i *Inspector) { i.trace = false }
}

// Inspector runs the decoders. It holds no state beyond its options and is
// safe for concurrent use.
type Inspector struct {
	trace bool
}

// New returns an Inspector with span collection enabled.
func New(opts ...Option) *Inspector {
	i := &Inspector{trace: true}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Guess runs every decoder over raw.
func (i *Inspector) Guess(raw []byte) *Report {
	return &Report{
		Hex:           hex.EncodeToString(raw),
		Len:           len(raw),
		Record:        guessRecord(raw),
		Index:         guessIndex(raw),
		Memcomparable: guessMemcomparable(raw),
		WriteKey:      guessWriteKey(raw),
		Write:         i.guessWrite(raw),
		Varint:        guessVarint(raw),
	}
}

func guessRecord(raw []byte) RecordGuess {
	rec, err := codec.ParseRecord(raw)
	if err != nil {
		return RecordGuess{Error: err.Error()}
	}
	return RecordGuess{OK: true, Record: &rec, Trailing: codec.RecordTrailing(raw)}
}

func guessIndex(raw []byte) IndexGuess {
	key, err := codec.ParseIndexKey(raw)
	if err != nil {
		return IndexGuess{Error: err.Error()}
	}
	return IndexGuess{
		OK:      true,
		TableID: key.TableID,
		IndexID: key.IndexID,
		Values:  hex.EncodeToString(key.Values),
	}
}

// innerRecord parses a row key found inside another encoding.
func innerRecord(b []byte) *codec.Record {
	rec, err := codec.ParseRecord(b)
	if err != nil {
		return nil
	}
	return &rec
}

func guessMemcomparable(raw []byte) MemcomparableGuess {
	key, rest, err := codec.DecodeBytesPrefix(raw)
	if err != nil {
		return MemcomparableGuess{Error: err.Error()}
	}
	return MemcomparableGuess{
		OK:      true,
		Decoded: hex.EncodeToString(key),
		Rest:    hex.EncodeToString(rest),
		Record:  innerRecord(key),
	}
}

func guessWriteKey(raw []byte) WriteKeyGuess {
	key, ts, err := mvcc.DecodeWriteKey(raw)
	if err != nil {
		return WriteKeyGuess{Error: err.Error()}
	}
	return WriteKeyGuess{
		OK:       true,
		UserKey:  hex.EncodeToString(key),
		CommitTS: ts,
		Record:   innerRecord(key),
	}
}

func (i *Inspector) guessWrite(raw []byte) WriteGuess {
	var tr *mvcc.Trace
	if i.trace {
		tr = &mvcc.Trace{}
	}
	w, n, err := mvcc.ParseWritePrefix(raw, tr)
	if err != nil {
		return WriteGuess{Error: err.Error()}
	}
	g := WriteGuess{OK: true, Write: w, Unparsed: len(raw) - n}
	if tr != nil {
		g.Spans = tr.Spans
	}
	return g
}

func guessVarint(raw []byte) VarintGuess {
	v, n, err := codec.DecodeUvarint(raw)
	if err != nil {
		return VarintGuess{Error: err.Error()}
	}
	return VarintGuess{OK: true, Value: v, Width: n}
}
