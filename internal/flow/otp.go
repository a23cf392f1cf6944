package flow

import (
	"context"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/backend"
	"github.com/Goofygiraffe06/parewa/internal/controller"
	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/internal/notify"
	"github.com/Goofygiraffe06/parewa/internal/schema"
	"github.com/Goofygiraffe06/parewa/internal/utils"
)

// OTPFlow verifies a one-time code and advances to password setup.
type OTPFlow struct {
	api           OTPVerifier
	guard         *controller.SubmissionRegistry
	verifications Verifications
	journal       Journal
}

// NewOTPFlow wires the OTP page. verifications and journal may be nil.
func NewOTPFlow(api OTPVerifier, guard *controller.SubmissionRegistry, verifications Verifications, journal Journal) *OTPFlow {
	if journal == nil {
		journal = nopJournal{}
	}
	return &OTPFlow{api: api, guard: guard, verifications: verifications, journal: journal}
}

// InFlight reports whether a submission for this page instance is running.
func (f *OTPFlow) InFlight(sessionID, email string) bool {
	return f.guard.InFlight(controller.Key(sessionID, models.PageVerifyOTP, email))
}

// Submit validates otp and, when valid, asks the API to verify it.
// The page instance stays claimed until Submit returns.
func (f *OTPFlow) Submit(ctx context.Context, req Request, otp string) Outcome {
	start := time.Now()
	emailHash := utils.HashEmail(req.Email)

	key := controller.Key(req.SessionID, models.PageVerifyOTP, req.Email)
	if !f.guard.Begin(key) {
		return record(f.journal, models.PageVerifyOTP, req.Email, start, Outcome{Status: models.OutcomeBusy})
	}
	defer f.guard.End(key)

	res := schema.OTP(req.Email, otp)
	if !res.OK() {
		logging.DebugLog("OTP submission invalid [%s]: %v", emailHash, res.Errors)
		return record(f.journal, models.PageVerifyOTP, req.Email, start,
			Outcome{Status: models.OutcomeInvalid, FieldErrors: res.Errors})
	}

	if _, err := f.api.VerifyOTP(ctx, res.Value); err != nil {
		logging.WarnLog("OTP verification failed [%s]: %v", emailHash, err)
		req.sink().Notify(notify.Failure(OTPFailureTitle, backend.Message(err, OTPFailureFallback)))
		code := backend.StatusCode(err)
		return record(f.journal, models.PageVerifyOTP, req.Email, start,
			Outcome{Status: failureStatus(code), StatusCode: code})
	}

	req.sink().Notify(notify.Success(OTPVerifiedMessage))
	if f.verifications != nil {
		if err := f.verifications.Remember(req.SessionID, res.Value.Email); err != nil {
			logging.WarnLog("OTP verified but session binding failed [%s]: %v", emailHash, err)
		}
	}

	logging.InfoLog("OTP verified [%s] %v", emailHash, time.Since(start))
	return record(f.journal, models.PageVerifyOTP, req.Email, start, Outcome{
		Status:   models.OutcomeSucceeded,
		Redirect: SetPasswordPath(res.Value.Email),
	})
}
