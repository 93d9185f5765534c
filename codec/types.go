package codec

import "fmt"

// KeyType is a single ASCII byte that marks a segment of a row key.
type KeyType byte

const (
	KeyTypeTable     KeyType = 't'
	KeyTypeSeparator KeyType = '_'
	KeyTypeRow       KeyType = 'r'
	KeyTypeIndex     KeyType = 'i'
)

// Record identifies one row of one table, as extracted from a row key.
type Record struct {
	TableID int64 `json:"table_id"`
	RowID   int64 `json:"row_id"`
}

func (r Record) String() string {
	return fmt.Sprintf("t%d_r%d", r.TableID, r.RowID)
}

// IndexKey identifies one entry of a secondary index. Values holds the
// encoded column values (and the row handle, for non-unique indexes).
type IndexKey struct {
	TableID int64  `json:"table_id"`
	IndexID int64  `json:"index_id"`
	Values  []byte `json:"-"`
}

func (k IndexKey) String() string {
	return fmt.Sprintf("t%d_i%d", k.TableID, k.IndexID)
}
