// Package flow holds the submit logic of the signup pages, independent of HTTP and rendering.
package flow

import (
	"context"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/internal/notify"
	"github.com/Goofygiraffe06/parewa/internal/schema"
	"github.com/Goofygiraffe06/parewa/internal/utils"
)

// Toast copy shown to the user.
const (
	OTPVerifiedMessage    = "OTP Verified Successfully"
	OTPFailureTitle       = "Invalid OTP"
	OTPFailureFallback    = "Verification failed."
	SignupCreatedMessage  = "Account successfully created!"
	SignupFailureTitle    = "Error"
	SignupFailureFallback = "Something went wrong. Please try again."
	UnverifiedEmailNotice = "Please verify your email before setting a password."
)

type OTPVerifier interface {
	VerifyOTP(ctx context.Context, sub models.OTPSubmission) (*models.APIResponse, error)
}

type SignupCompleter interface {
	Signup(ctx context.Context, sub models.PasswordSubmission) (*models.APIResponse, error)
}

// Journal receives one entry per submission.
type Journal interface {
	Record(a models.Attempt)
}

// Verifications binds a session to the email it proved ownership of.
type Verifications interface {
	Remember(sessionID, email string) error
	Verified(sessionID string) (string, bool)
	Forget(sessionID string)
}

// Request identifies who submits for which email. Email is already percent-decoded.
type Request struct {
	SessionID string
	Email     string
	Sink      notify.Sink
}

func (r Request) sink() notify.Sink {
	if r.Sink == nil {
		return notify.Discard
	}
	return r.Sink
}

// Outcome tells the caller what to render next.
type Outcome struct {
	// Status is one of the models.Outcome* values.
	Status      string
	FieldErrors schema.FieldErrors
	// Redirect is set when the page should navigate, replacing the current entry.
	Redirect string
	// StatusCode is the upstream status of a rejected call; 0 when none was received.
	StatusCode int
}

func (o Outcome) Busy() bool      { return o.Status == models.OutcomeBusy }
func (o Outcome) Invalid() bool   { return o.Status == models.OutcomeInvalid }
func (o Outcome) Succeeded() bool { return o.Status == models.OutcomeSucceeded }

// VerifyOTPPath is the OTP page for email.
func VerifyOTPPath(email string) string {
	return "/" + models.PageVerifyOTP + "/" + utils.EncodePathEmail(email)
}

// SetPasswordPath is the set-password page for email.
func SetPasswordPath(email string) string {
	return "/" + models.PageSetPassword + "/" + utils.EncodePathEmail(email)
}

type nopJournal struct{}

func (nopJournal) Record(models.Attempt) {}

func record(j Journal, page, email string, start time.Time, out Outcome) Outcome {
	j.Record(models.Attempt{
		Page:       page,
		EmailHash:  utils.HashEmail(email),
		Outcome:    out.Status,
		StatusCode: out.StatusCode,
		Duration:   time.Since(start),
	})
	return out
}

func failureStatus(code int) string {
	if code == 0 {
		return models.OutcomeFailed
	}
	return models.OutcomeRejected
}
