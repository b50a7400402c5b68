package registry

// Store is a forward-only string key-value index. Values are appended with a
// logical position and never deleted; readers see the latest value set at or
// before their own position. It replaces what would otherwise be ambient
// global state and is passed by reference through the pipeline stages.
type Store struct {
	entries map[string][]entry
}

type entry struct {
	ord   uint64
	value string
}

// NewStore returns an empty registry store.
func NewStore() *Store {
	return &Store{entries: make(map[string][]entry)}
}

// Set appends a value for the key at the given ordinal. Appends are expected
// to arrive in non-decreasing ordinal order within a block.
func (s *Store) Set(ord uint64, key, value string) {
	s.entries[key] = append(s.entries[key], entry{ord: ord, value: value})
}

// GetLast returns the most recent value for the key.
func (s *Store) GetLast(key string) (string, bool) {
	versions, ok := s.entries[key]
	if !ok || len(versions) == 0 {
		return "", false
	}
	return versions[len(versions)-1].value, true
}

// GetAt returns the latest value set at or before the given ordinal.
func (s *Store) GetAt(key string, ord uint64) (string, bool) {
	versions, ok := s.entries[key]
	if !ok {
		return "", false
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].ord <= ord {
			return versions[i].value, true
		}
	}
	return "", false
}

// Len returns the number of distinct keys.
func (s *Store) Len() int {
	return len(s.entries)
}
