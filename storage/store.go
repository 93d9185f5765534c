// Package storage keeps captured raw keys and values in a pebble store and
// decodes them in key order.
package storage

import (
	"context"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/logger"
	"github.com/guileen/keyguess/mvcc"
)

// ErrClosed is returned by every operation on a closed store.
var ErrClosed = errors.New(errors.ErrCodeStorage, "store is closed")

// Store is a pebble database of captured key/value pairs. It is safe for
// concurrent use.
type Store struct {
	db       *pebble.DB
	path     string
	readOnly bool
	sync     bool

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates, unless read-only) the store at cfg.Path.
func Open(cfg *PebbleConfig) (*Store, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, errors.New(errors.ErrCodeValidation, "storage path is required")
	}

	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()

	opts := &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: cfg.MaxOpenFiles,
		MemTableSize: uint64(cfg.MemTableSize),
		ReadOnly:     cfg.ReadOnly,
	}

	db, err := pebble.Open(cfg.Path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeStorage, "Open", "open pebble at %s", cfg.Path)
	}

	logger.Info("store opened",
		logger.Component("storage"),
		logger.String("path", cfg.Path),
		logger.Bool("read_only", cfg.ReadOnly))

	return &Store{db: db, path: cfg.Path, readOnly: cfg.ReadOnly, sync: cfg.Sync}, nil
}

// Path returns the directory the store lives in.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) writeOptions() *pebble.WriteOptions {
	if s.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

// Put stores one key/value pair.
func (s *Store) Put(ctx context.Context, key, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if s.readOnly {
		return errors.New(errors.ErrCodeStorage, "store is read-only").WithOp("Put")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Set(key, value, s.writeOptions()); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage, "Put")
	}
	return nil
}

// PutWrite stores w under the write column family key for userKey at commitTS.
func (s *Store) PutWrite(ctx context.Context, userKey []byte, commitTS mvcc.TimeStamp, w *mvcc.Write) error {
	value, err := w.MarshalBinary()
	if err != nil {
		return err
	}
	return s.Put(ctx, mvcc.EncodeWriteKey(userKey, commitTS), value)
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	value, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeStorage, "Get")
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, true, nil
}

// ScanFunc receives each pair in key order. The slices are only valid for
// the duration of the call.
type ScanFunc func(key, value []byte) error

// Scan visits up to limit pairs whose key starts with prefix. A limit of
// zero or less means no limit. Scan stops early when ctx is cancelled or fn
// returns an error.
func (s *Store) Scan(ctx context.Context, prefix []byte, limit int, fn ScanFunc) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	iter, err := s.db.NewIter(prefixIterOptions(prefix))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage, "Scan")
	}
	defer iter.Close()

	n := 0
	for valid := iter.First(); valid; valid = iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit > 0 && n >= limit {
			break
		}
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
		n++
	}
	if err := iter.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage, "Scan")
	}
	return nil
}

// Close flushes and closes the store. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage, "Close")
	}
	logger.Debug("store closed", logger.Component("storage"), logger.String("path", s.path))
	return nil
}

func prefixIterOptions(prefix []byte) *pebble.IterOptions {
	if len(prefix) == 0 {
		return nil
	}
	return &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	}
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix, or nil when no such key exists (all 0xFF).
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
