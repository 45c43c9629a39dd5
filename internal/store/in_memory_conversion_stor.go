package store

import (
	"sync"
	"time"

	"github.com/hashicorp/go-uuid"
)

type InMemoryConversionStor struct {
	mu          sync.RWMutex
	nextID      int
	conversions map[string]*Conversion
}

func NewInMemoryConversionStor() *InMemoryConversionStor {
	return &InMemoryConversionStor{nextID: 1, conversions: make(map[string]*Conversion)}
}

func (s *InMemoryConversionStor) GetConversionByDigest(digest string) (*Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conversions[digest]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *InMemoryConversionStor) AddConversion(c *Conversion) (*Conversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.conversions[c.Digest]; ok {
		copied := *existing
		return &copied, nil
	}

	var err error
	stored := *c
	if stored.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.nextID++
	s.conversions[c.Digest] = &stored

	copied := stored
	return &copied, nil
}

func (s *InMemoryConversionStor) CountConversions() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.conversions)), nil
}
