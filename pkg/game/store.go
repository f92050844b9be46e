package game

import (
	"sync"
)

// Store 快照的键值存储
//
// 实现：GdataStore（本地数据目录）、SQLiteStore、MemoryStore。
// 键不存在时 Load 返回 ErrNoSnapshot。
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}

// MemoryStore 仅存在于进程内存中的存储
type MemoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.items[key]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
