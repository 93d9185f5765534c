package mvcc

import (
	"github.com/guileen/keyguess/codec"
	"github.com/guileen/keyguess/errors"
)

// EncodeWriteKey builds the write column family key for userKey committed at
// commitTS: the memcomparable user key followed by the bitwise-inverted
// timestamp, so newer versions of a key sort first.
func EncodeWriteKey(userKey []byte, commitTS TimeStamp) []byte {
	buf := make([]byte, 0, codec.EncodedLen(len(userKey))+codec.Uint64Size)
	buf = codec.AppendEncodedBytes(buf, userKey)
	return append(buf, codec.EncodeUint64BE(^uint64(commitTS))...)
}

// DecodeWriteKey splits a key built by EncodeWriteKey.
func DecodeWriteKey(key []byte) (userKey []byte, commitTS TimeStamp, err error) {
	userKey, rest, err := codec.DecodeBytesPrefix(key)
	if err != nil {
		return nil, 0, err
	}
	if len(rest) != codec.Uint64Size {
		return nil, 0, errors.Errorf(errors.ErrCodeTruncatedInput,
			"write key needs an %d byte timestamp suffix, got %d", codec.Uint64Size, len(rest)).WithOp("DecodeWriteKey")
	}
	ts, _ := codec.DecodeUint64BE(rest)
	return userKey, TimeStamp(^ts), nil
}
