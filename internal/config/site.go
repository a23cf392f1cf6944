package config

import "time"

func SiteTitle() string {
	return GetEnv("SITE_TITLE", "Parewa | 6000E +2 CS")
}

func SiteDescription() string {
	return GetEnv("SITE_DESCRIPTION", "Parewa is a media platform developed and managed by the students of BNKS")
}

// APIBaseURL is the origin serving /api/verify_otp and /api/signup.
func APIBaseURL() string {
	return GetEnv("API_BASE_URL", "http://localhost:8080")
}

func APITimeout() time.Duration {
	return MustParseDuration("API_TIMEOUT", "10s")
}

// SignupSuccessRedirect is where a completed signup navigates; empty keeps the user on the page.
func SignupSuccessRedirect() string {
	return GetEnv("SIGNUP_SUCCESS_REDIRECT", "")
}

func CORSAllowedOrigins() []string {
	return parseListEnv("CORS_ALLOWED_ORIGINS")
}
