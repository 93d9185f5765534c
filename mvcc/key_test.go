package mvcc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
)

func TestWriteKeyRoundTrip(t *testing.T) {
	userKey := codec.EncodeRecord(codec.Record{TableID: 53, RowID: 1})
	key := EncodeWriteKey(userKey, 425)

	gotKey, gotTS, err := DecodeWriteKey(key)
	require.NoError(t, err)
	assert.Equal(t, userKey, gotKey)
	assert.Equal(t, TimeStamp(425), gotTS)
}

func TestWriteKeyNewerSortsFirst(t *testing.T) {
	older := EncodeWriteKey([]byte("k"), 10)
	newer := EncodeWriteKey([]byte("k"), 20)
	assert.Negative(t, bytes.Compare(newer, older))
}

func TestDecodeWriteKeyErrors(t *testing.T) {
	_, _, err := DecodeWriteKey(codec.EncodeBytes([]byte("k")))
	assert.True(t, errors.IsTruncatedInput(err))

	_, _, err = DecodeWriteKey([]byte{1, 2, 3})
	assert.True(t, errors.IsMalformedEncoding(err))
}
