package config

import "time"

func SessionCookieName() string {
	return GetEnv("SESSION_COOKIE", "parewa_session")
}

func SessionIssuer() string {
	return GetEnv("SESSION_ISSUER", "parewa-web")
}

func SessionTTL() time.Duration {
	return MustParseDuration("SESSION_TTL", "30m")
}

// CookieSecure marks session cookies Secure. Disable only for plain-http development.
func CookieSecure() bool {
	return parseBoolEnv("COOKIE_SECURE", true)
}

// VerificationTTL is how long a verified email stays bound to a session.
func VerificationTTL() time.Duration {
	return MustParseDuration("VERIFICATION_TTL", "15m")
}

// StrictEmailBinding rejects password submissions for an email the session did not verify.
func StrictEmailBinding() bool {
	return parseBoolEnv("STRICT_EMAIL_BINDING", false)
}
