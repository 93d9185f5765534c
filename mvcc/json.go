package mvcc

import (
	"encoding/hex"
	"encoding/json"
)

type writeJSON struct {
	WriteType             WriteType  `json:"write_type"`
	StartTS               TimeStamp  `json:"start_ts"`
	ShortValue            *string    `json:"short_value"`
	HasOverlappedRollback bool       `json:"has_overlapped_rollback"`
	GCFence               *TimeStamp `json:"gc_fence"`
}

// MarshalJSON renders the short value as hex, or null when absent.
func (w *Write) MarshalJSON() ([]byte, error) {
	v := writeJSON{
		WriteType:             w.WriteType,
		StartTS:               w.StartTS,
		HasOverlappedRollback: w.HasOverlappedRollback,
		GCFence:               w.GCFence,
	}
	if w.shortValue != nil {
		s := hex.EncodeToString(w.shortValue)
		v.ShortValue = &s
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts the form produced by MarshalJSON.
func (w *Write) UnmarshalJSON(data []byte) error {
	var v writeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	out := Write{
		WriteType:             v.WriteType,
		StartTS:               v.StartTS,
		HasOverlappedRollback: v.HasOverlappedRollback,
		GCFence:               v.GCFence,
	}
	if v.ShortValue != nil {
		b, err := hex.DecodeString(*v.ShortValue)
		if err != nil {
			return err
		}
		if err := out.SetShortValue(b); err != nil {
			return err
		}
	}
	*w = out
	return nil
}
