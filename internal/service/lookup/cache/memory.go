package cache

import (
	"context"
	"sync"
	"time"
)

// memoryStore 프로세스 메모리에 항목을 보관합니다.
// 만료 항목은 조회 시점에 무시되고 PurgeExpired 호출 시 실제로 삭제됩니다.
type memoryStore struct {
	mu    sync.RWMutex
	items map[string]entry

	now func() time.Time
}

var _ Store = (*memoryStore)(nil)

// NewMemoryStore 메모리 캐시 저장소를 생성합니다.
func NewMemoryStore() Store {
	return newMemoryStore(time.Now)
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		items: make(map[string]entry),
		now:   now,
	}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || e.expired(s.now()) {
		return nil, ErrCacheMiss
	}

	out := make([]byte, len(e.Value))
	copy(out, e.Value)

	return out, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = entry{Key: key, Value: stored, ExpiresAt: s.now().Add(ttl)}

	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)

	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]entry)

	return nil
}

func (s *memoryStore) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for key, e := range s.items {
		if e.expired(now) {
			delete(s.items, key)
			purged++
		}
	}

	return purged, nil
}

func (s *memoryStore) Close() error {
	return nil
}
