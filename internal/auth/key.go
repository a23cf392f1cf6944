package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"sync"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
)

// SigningKey signs session cookies. It lives for the process, so a restart
// invalidates every outstanding session.
type SigningKey struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

var (
	signingKey *SigningKey
	once       sync.Once
)

func InitSigningKey() {
	once.Do(func() {
		start := time.Now()

		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			logging.ErrorLog("Ed25519 key generation failed: %v", err)
			panic("failed to generate Ed25519 key: " + err.Error())
		}

		signingKey = &SigningKey{
			PrivateKey: priv,
			PublicKey:  pub,
		}

		logging.InfoLog("Session signing key generated %v", time.Since(start))
	})
}

func GetSigningKey() *SigningKey {
	if signingKey == nil {
		logging.WarnLog("Signing key accessed before initialization")
	}
	return signingKey
}
