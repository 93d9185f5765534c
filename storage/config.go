package storage

// PebbleConfig holds configuration options for the pebble store.
type PebbleConfig struct {
	Path         string
	ReadOnly     bool
	CacheSize    int64
	MemTableSize int
	MaxOpenFiles int
	// Sync forces an fsync on every Put.
	Sync bool
}

// DefaultPebbleConfig returns settings suited to inspecting captured data:
// a modest cache and no sync on writes.
func DefaultPebbleConfig(path string) *PebbleConfig {
	return &PebbleConfig{
		Path:         path,
		CacheSize:    64 << 20,
		MemTableSize: 16 << 20,
		MaxOpenFiles: 1000,
	}
}

// TestPebbleConfig keeps memory usage low for tests.
func TestPebbleConfig(path string) *PebbleConfig {
	return &PebbleConfig{
		Path:         path,
		CacheSize:    4 << 20,
		MemTableSize: 1 << 20,
		MaxOpenFiles: 100,
	}
}
