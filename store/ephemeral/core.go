package ephemeral

import (
	"errors"
	"sync"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/utils"
)

var (
	ErrTooLong   = errors.New("key too long")
	ErrStoreFull = errors.New("ephemeral store full")
)

const (
	maxKeyLength    = 255
	maxStoreSize    = 10_000
	cleanupInterval = time.Minute
)

type item struct {
	value     string
	expiresAt time.Time
}

type coreStore struct {
	data map[string]item
	mu   sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func newCoreStore() *coreStore {
	store := &coreStore{
		data: make(map[string]item),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go store.cleanup(cleanupInterval)
	return store
}

func (s *coreStore) set(key, value string, ttl time.Duration) error {
	if len(key) > maxKeyLength {
		logging.DebugLog("Store set failed: key too long [%s] (length: %d)", utils.HashEmail(key), len(key))
		return ErrTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Overwriting an existing key never grows the map.
	if _, exists := s.data[key]; !exists && len(s.data) >= maxStoreSize {
		logging.WarnLog("Store set failed: store full (size: %d)", len(s.data))
		return ErrStoreFull
	}

	s.data[key] = item{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *coreStore) get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.data[key]
	if !ok || time.Now().After(it.expiresAt) {
		return "", false
	}
	return it.value, true
}

func (s *coreStore) delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *coreStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *coreStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for k, v := range s.data {
		if now.After(v.expiresAt) {
			delete(s.data, k)
			expired++
		}
	}
	return expired
}

func (s *coreStore) cleanup(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			if n := s.sweep(now); n > 0 {
				logging.DebugLog("Store cleanup: removed %d expired items", n)
			}
		}
	}
}

func (s *coreStore) close() {
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}
