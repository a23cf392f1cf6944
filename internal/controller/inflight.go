package controller

import (
	"sync"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/utils"
)

// SubmissionRegistry admits at most one in-flight submission per key.
// A key identifies one page instance: session, page and email.
type SubmissionRegistry struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewSubmissionRegistry() *SubmissionRegistry {
	return &SubmissionRegistry{
		inflight: make(map[string]struct{}),
	}
}

// Key builds the registry key for a page instance.
func Key(sessionID, page, email string) string {
	return sessionID + "|" + page + "|" + email
}

// Begin claims key. It returns false when a submission for key is already running.
func (r *SubmissionRegistry) Begin(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.inflight[key]; busy {
		logging.DebugLog("Submission rejected: already in flight [%s]", utils.HashEmail(key))
		return false
	}
	r.inflight[key] = struct{}{}
	return true
}

// End releases key. Releasing an unclaimed key is a no-op.
func (r *SubmissionRegistry) End(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, key)
}

// InFlight reports whether key is currently claimed.
func (r *SubmissionRegistry) InFlight(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.inflight[key]
	return busy
}

// Count returns the number of submissions in flight.
func (r *SubmissionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inflight)
}
