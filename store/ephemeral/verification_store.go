package ephemeral

import (
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/utils"
)

// VerificationStore remembers, per session, the email whose OTP was accepted.
// Entries live in memory only and expire after their TTL.
type VerificationStore struct {
	core *coreStore
	ttl  time.Duration
}

func NewVerificationStore(ttl time.Duration) *VerificationStore {
	return &VerificationStore{core: newCoreStore(), ttl: ttl}
}

// Remember binds email to sessionID, replacing any earlier binding.
func (s *VerificationStore) Remember(sessionID, email string) error {
	if err := s.core.set(sessionID, email, s.ttl); err != nil {
		logging.WarnLog("Verification store set failed [%s]: %v", utils.HashEmail(email), err)
		return err
	}
	return nil
}

// Verified returns the email bound to sessionID, if any and not expired.
func (s *VerificationStore) Verified(sessionID string) (string, bool) {
	return s.core.get(sessionID)
}

func (s *VerificationStore) Forget(sessionID string) {
	s.core.delete(sessionID)
}

// Len reports the number of stored entries, expired ones included until swept.
func (s *VerificationStore) Len() int {
	return s.core.len()
}

// Close stops the background sweeper.
func (s *VerificationStore) Close() {
	s.core.close()
}
