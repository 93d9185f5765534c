package storage

import (
	"context"
	"encoding/hex"

	"github.com/guileen/keyguess/inspect"
)

// Entry is one stored pair with every interpretation of its key and value.
type Entry struct {
	Key         string          `json:"key"`
	Value       string          `json:"value"`
	KeyReport   *inspect.Report `json:"key_report"`
	ValueReport *inspect.Report `json:"value_report"`
}

// Inspect scans like Scan and runs the inspector over each key and value.
func (s *Store) Inspect(ctx context.Context, in *inspect.Inspector, prefix []byte, limit int) ([]Entry, error) {
	var entries []Entry
	err := s.Scan(ctx, prefix, limit, func(key, value []byte) error {
		entries = append(entries, Entry{
			Key:         hex.EncodeToString(key),
			Value:       hex.EncodeToString(value),
			KeyReport:   in.Guess(key),
			ValueReport: in.Guess(value),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
