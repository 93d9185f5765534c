package inspect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/mvcc"
)

var rowKey = []byte{116, 128, 0, 0, 0, 0, 0, 0, 53, 95, 114, 128, 0, 0, 0, 0, 0, 0, 1}

func TestGuessRowKey(t *testing.T) {
	r := New().Guess(rowKey)

	assert.Equal(t, "7480000000000000355f728000000000000001", r.Hex)
	assert.Equal(t, 19, r.Len)
	require.True(t, r.Record.OK)
	assert.Equal(t, codec.Record{TableID: 53, RowID: 1}, *r.Record.Record)
	assert.Zero(t, r.Record.Trailing)
	assert.False(t, r.Index.OK)

	assert.False(t, r.Memcomparable.OK)
	assert.NotEmpty(t, r.Memcomparable.Error)
	assert.False(t, r.WriteKey.OK)
	// 't' is not a write type tag
	assert.False(t, r.Write.OK)
	assert.Contains(t, r.Write.Error, "unknown write type")
	assert.Contains(t, r.Matches(), KindRecord)
}

func TestGuessEncodedRowKey(t *testing.T) {
	encoded := codec.EncodeBytes(rowKey)
	r := New().Guess(encoded)

	assert.False(t, r.Record.OK)
	require.True(t, r.Memcomparable.OK)
	assert.Equal(t, "7480000000000000355f728000000000000001", r.Memcomparable.Decoded)
	assert.Empty(t, r.Memcomparable.Rest)
	require.NotNil(t, r.Memcomparable.Record)
	assert.Equal(t, int64(53), r.Memcomparable.Record.TableID)
}

func TestGuessWriteKey(t *testing.T) {
	key := mvcc.EncodeWriteKey(rowKey, 400)
	r := New().Guess(key)

	require.True(t, r.WriteKey.OK)
	assert.Equal(t, mvcc.TimeStamp(400), r.WriteKey.CommitTS)
	require.NotNil(t, r.WriteKey.Record)
	assert.Equal(t, int64(1), r.WriteKey.Record.RowID)

	require.True(t, r.Memcomparable.OK)
	assert.Len(t, r.Memcomparable.Rest, 16)
}

func TestGuessWriteRecord(t *testing.T) {
	r := New().Guess([]byte{80, 0, 118, 1, 0})

	require.True(t, r.Write.OK)
	assert.Equal(t, mvcc.WriteTypePut, r.Write.Write.WriteType)
	assert.Equal(t, []byte{0}, r.Write.Write.ShortValue())
	assert.Len(t, r.Write.Spans, 5)
	assert.Zero(t, r.Write.Unparsed)

	require.True(t, r.Varint.OK)
	assert.Equal(t, uint64(80), r.Varint.Value)
	assert.Equal(t, 1, r.Varint.Width)
	assert.Equal(t, []string{KindWrite, KindVarint}, r.Matches())
}

func TestGuessWithoutTrace(t *testing.T) {
	r := New(WithoutTrace()).Guess([]byte{'D', 5, 'Q'})
	require.True(t, r.Write.OK)
	assert.Empty(t, r.Write.Spans)
	assert.Equal(t, 1, r.Write.Unparsed)
}

func TestGuessEmpty(t *testing.T) {
	r := New().Guess(nil)
	assert.Empty(t, r.Matches())
	assert.NotEmpty(t, r.Record.Error)
	assert.NotEmpty(t, r.Write.Error)
	assert.NotEmpty(t, r.Varint.Error)
}

func TestReportJSON(t *testing.T) {
	data, err := json.Marshal(New().Guess([]byte{80, 0, 118, 1, 0}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	write := decoded["write"].(map[string]any)
	assert.Equal(t, true, write["ok"])
	assert.Equal(t, "Put", write["write"].(map[string]any)["write_type"])
}

func TestGuessRowKeyWithTrailingBytes(t *testing.T) {
	r := New().Guess(append(append([]byte{}, rowKey...), 0xde, 0xad))

	require.True(t, r.Record.OK)
	assert.Equal(t, codec.Record{TableID: 53, RowID: 1}, *r.Record.Record)
	assert.Equal(t, 2, r.Record.Trailing)
}

func TestGuessIndexKey(t *testing.T) {
	key := append(codec.EncodeIndexKeyPrefix(53, 2), codec.EncodeBytes([]byte{1})...)
	r := New().Guess(key)

	require.True(t, r.Index.OK)
	assert.Equal(t, int64(53), r.Index.TableID)
	assert.Equal(t, int64(2), r.Index.IndexID)
	assert.Equal(t, "0100000000000000f8", r.Index.Values)
	assert.False(t, r.Record.OK)
	assert.Contains(t, r.Matches(), KindIndex)
	assert.NotContains(t, r.Matches(), KindRecord)
}
