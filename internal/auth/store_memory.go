package auth

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	userID    uint
	expiresAt time.Time
}

// MemoryRevocationStore is a mutex-guarded in-process implementation, used in
// tests and single-node development runs.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{records: make(map[string]memoryRecord)}
}

func (s *MemoryRevocationStore) Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[jti] = memoryRecord{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryRevocationStore) TakeUserID(ctx context.Context, jti string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[jti]
	if !ok || time.Now().After(rec.expiresAt) {
		delete(s.records, jti)
		return 0, ErrTokenRevoked
	}
	delete(s.records, jti)
	return rec.userID, nil
}

func (s *MemoryRevocationStore) Delete(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, jti)
	return nil
}
