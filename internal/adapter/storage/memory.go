package storage

// MemoryStore is an ephemeral KVStore used in tests and in --ephemeral
// runs. Operations never fail.
type MemoryStore struct {
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}
