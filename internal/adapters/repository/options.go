package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxEntries caps the number of entries kept; the oldest entry is
// dropped first. Zero or negative keeps everything.
func WithMaxEntries(n int) Option {
	return func(s *MemoryStore) {
		s.maxEntries = n
	}
}
