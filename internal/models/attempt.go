package models

import "time"

const (
	PageVerifyOTP   = "verify_otp"
	PageSetPassword = "set_password"
)

// Outcome of a single form submission.
const (
	OutcomeInvalid   = "invalid"
	OutcomeBusy      = "busy"
	OutcomeUnbound   = "unbound"
	OutcomeSucceeded = "succeeded"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Attempt is one journal row. EmailHash never holds the clear address.
type Attempt struct {
	ID         string
	Page       string
	EmailHash  string
	Outcome    string
	StatusCode int
	Duration   time.Duration
	CreatedAt  time.Time
}
