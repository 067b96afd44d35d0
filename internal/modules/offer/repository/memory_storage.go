package repository

import (
	"sync"

	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
)

// MemoryStorage implements Repository with a fixed-size ring. Nothing survives
// a restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	offers []*domain.Offer
	next   int
	full   bool
}

// NewMemoryStorage creates a new in-memory offer repository
func NewMemoryStorage(size int) Repository {
	if size <= 0 {
		size = 50
	}
	return &MemoryStorage{offers: make([]*domain.Offer, size)}
}

func (s *MemoryStorage) SaveOffer(offer *domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offers[s.next] = offer
	s.next = (s.next + 1) % len(s.offers)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// GetOffers returns up to limit offers, newest first.
func (s *MemoryStorage) GetOffers(limit int) ([]*domain.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := s.next
	if s.full {
		count = len(s.offers)
	}
	if limit > 0 && limit < count {
		count = limit
	}

	offers := make([]*domain.Offer, 0, count)
	for i := 1; i <= count; i++ {
		idx := (s.next - i + len(s.offers)) % len(s.offers)
		offers = append(offers, s.offers[idx])
	}
	return offers, nil
}
