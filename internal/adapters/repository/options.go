package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithHeaders configures the header row used when a category's table is
// created on first write.
func WithHeaders(headers map[string][]string) Option {
	return func(s *MemoryStore) {
		for category, header := range headers {
			s.headers[category] = append([]string(nil), header...)
		}
	}
}

// WithHeader configures a single category's header row.
func WithHeader(category string, header []string) Option {
	return func(s *MemoryStore) {
		s.headers[category] = append([]string(nil), header...)
	}
}
