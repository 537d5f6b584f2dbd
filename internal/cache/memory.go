package cache

import (
	"context"
	"sync"
	"time"

	"github.com/webmovie/backend/internal/common/clock"
	"github.com/webmovie/backend/internal/common/constants"
	"github.com/webmovie/backend/internal/common/logger"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the in-process Store used when no Redis address is
// configured. Expired entries are dropped lazily on read and swept by a
// background goroutine.
type MemoryStore struct {
	entries sync.Map
	clock   clock.Clock
	log     *logger.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewMemoryStore(ctx context.Context, clk clock.Clock, log *logger.Logger) *MemoryStore {
	storeCtx, cancel := context.WithCancel(ctx)
	s := &MemoryStore{
		clock:  clk,
		log:    log,
		ctx:    storeCtx,
		cancel: cancel,
	}

	go s.cleanup()

	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := s.entries.Load(key); ok {
		e := v.(*memoryEntry)
		if s.clock.Now().Before(e.expiresAt) {
			return e.value, nil
		}
		s.entries.Delete(key)
	}
	return nil, ErrMiss
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.entries.Store(key, &memoryEntry{
		value:     value,
		expiresAt: s.clock.Now().Add(ttl),
	})
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.entries.Delete(key)
	return nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(constants.MemoryCacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			now := s.clock.Now()
			removed := 0
			s.entries.Range(func(key, value interface{}) bool {
				entry := value.(*memoryEntry)
				if now.After(entry.expiresAt) {
					s.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				s.log.Debugf("memory cache cleaned up %d expired entries", removed)
			}
		}
	}
}

func (s *MemoryStore) Close() {
	s.cancel()
}
