package repository

import (
	"sync"

	"github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
)

const (
	DefaultCapacity = 5000
	DefaultEvict    = 1000
)

// MemoryStorage implements SeenStore with a bounded in-memory set.
// Once the set grows past capacity the oldest evict keys, by insertion order,
// are dropped in one pass.
type MemoryStorage struct {
	mu       sync.Mutex
	keys     map[domain.Key]struct{}
	order    []domain.Key
	capacity int
	evict    int
}

// NewMemoryStorage creates a new in-memory seen store
func NewMemoryStorage(capacity, evict int) *MemoryStorage {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if evict <= 0 {
		evict = DefaultEvict
	}
	evict = min(evict, capacity)

	return &MemoryStorage{
		keys:     make(map[domain.Key]struct{}, capacity+1),
		order:    make([]domain.Key, 0, capacity+1),
		capacity: capacity,
		evict:    evict,
	}
}

func (s *MemoryStorage) Seen(key domain.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		return true
	}

	s.keys[key] = struct{}{}
	s.order = append(s.order, key)

	if len(s.order) > s.capacity {
		for _, old := range s.order[:s.evict] {
			delete(s.keys, old)
		}
		// copy so the dropped prefix can be collected
		s.order = append(make([]domain.Key, 0, s.capacity+1), s.order[s.evict:]...)
	}

	return false
}

func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
