package auth

import (
	"errors"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrKeyNotInitialized = errors.New("Ed25519 key not initialized")

// SignClaims serialises claims into an EdDSA-signed token.
func SignClaims(claims jwt.Claims) (string, error) {
	key := GetSigningKey()
	if key == nil || key.PrivateKey == nil {
		return "", ErrKeyNotInitialized
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tokenStr, err := token.SignedString(key.PrivateKey)
	if err != nil {
		logging.ErrorLog("Token signing failed: %v", err)
		return "", err
	}
	return tokenStr, nil
}

// ParseClaims verifies tokenStr and fills claims. Only EdDSA tokens from issuer are accepted.
func ParseClaims(tokenStr, issuer string, claims jwt.Claims) error {
	key := GetSigningKey()
	if key == nil || key.PublicKey == nil {
		return ErrKeyNotInitialized
	}

	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key.PublicKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		logging.DebugLog("Token verification failed: %v", err)
		return err
	}
	return nil
}
