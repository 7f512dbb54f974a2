package repository

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMaxRecords bounds the number of kept records. Zero or negative
// means unbounded.
func WithMaxRecords(n int) MemoryOption {
	return func(s *MemoryStore) {
		s.maxRecords = n
	}
}
