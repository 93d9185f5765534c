package codec

import (
	"github.com/guileen/keyguess/errors"
)

// RecordKeyLen is the length of an encoded row key:
// 't' + table id (8) + '_' + 'r' + row id (8).
const RecordKeyLen = 19

const (
	tableIDOffset   = 1
	separatorOffset = 9
	rowMarkerOffset = 10
	rowIDOffset     = 11
)

// ParseRecord extracts the table and row ids from a row key. Bytes past the
// row id are ignored; RecordTrailing counts them.
func ParseRecord(code []byte) (Record, error) {
	tableID, rowID, err := parseTableKey(code, KeyTypeRow, "record")
	if err != nil {
		return Record{}, err
	}
	return Record{TableID: tableID, RowID: rowID}, nil
}

// RecordTrailing returns how many bytes of code follow a row key.
func RecordTrailing(code []byte) int {
	if len(code) < RecordKeyLen {
		return 0
	}
	return len(code) - RecordKeyLen
}

// ParseIndexKey splits an index key: 't' + table id + '_' + 'i' + index id,
// followed by the encoded index values.
func ParseIndexKey(code []byte) (IndexKey, error) {
	tableID, indexID, err := parseTableKey(code, KeyTypeIndex, "index key")
	if err != nil {
		return IndexKey{}, err
	}
	return IndexKey{
		TableID: tableID,
		IndexID: indexID,
		Values:  append([]byte{}, code[RecordKeyLen:]...),
	}, nil
}

// EncodeIndexKeyPrefix builds the index key prefix for a table and index.
func EncodeIndexKeyPrefix(tableID, indexID int64) []byte {
	buf := make([]byte, 0, RecordKeyLen)
	buf = append(buf, byte(KeyTypeTable))
	buf = appendMemComparableInt64(buf, tableID)
	buf = append(buf, byte(KeyTypeSeparator), byte(KeyTypeIndex))
	return appendMemComparableInt64(buf, indexID)
}

func parseTableKey(code []byte, marker KeyType, what string) (int64, int64, error) {
	if len(code) < RecordKeyLen {
		return 0, 0, errors.Errorf(errors.ErrCodeInvalidRecordFormat,
			"invalid %s bytes: need %d bytes, got %d", what, RecordKeyLen, len(code))
	}
	if KeyType(code[0]) != KeyTypeTable ||
		KeyType(code[separatorOffset]) != KeyTypeSeparator ||
		KeyType(code[rowMarkerOffset]) != marker {
		return 0, 0, errors.Errorf(errors.ErrCodeInvalidRecordFormat,
			"invalid %s bytes: missing t/_%c markers", what, byte(marker))
	}

	tableID, _ := readMemComparableInt64(code[tableIDOffset:separatorOffset])
	id, _ := readMemComparableInt64(code[rowIDOffset:RecordKeyLen])
	return tableID, id, nil
}

// EncodeRecord builds the row key for r.
func EncodeRecord(r Record) []byte {
	buf := make([]byte, 0, RecordKeyLen)
	buf = append(buf, byte(KeyTypeTable))
	buf = appendMemComparableInt64(buf, r.TableID)
	buf = append(buf, byte(KeyTypeSeparator), byte(KeyTypeRow))
	return appendMemComparableInt64(buf, r.RowID)
}
