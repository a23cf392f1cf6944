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

// PasswordOptions tunes the set-password page.
type PasswordOptions struct {
	// StrictEmailBinding refuses emails the session has not verified.
	StrictEmailBinding bool
	// SuccessRedirect, when set, is navigated to after the account is created.
	SuccessRedirect string
}

// PasswordFlow completes signup by setting the account password.
type PasswordFlow struct {
	api           SignupCompleter
	guard         *controller.SubmissionRegistry
	verifications Verifications
	journal       Journal
	opts          PasswordOptions
}

// NewPasswordFlow wires the set-password page. verifications and journal may be nil.
func NewPasswordFlow(api SignupCompleter, guard *controller.SubmissionRegistry, verifications Verifications, journal Journal, opts PasswordOptions) *PasswordFlow {
	if journal == nil {
		journal = nopJournal{}
	}
	return &PasswordFlow{api: api, guard: guard, verifications: verifications, journal: journal, opts: opts}
}

func (f *PasswordFlow) InFlight(sessionID, email string) bool {
	return f.guard.InFlight(controller.Key(sessionID, models.PageSetPassword, email))
}

// Submit validates the passwords and, when valid, asks the API to create the account.
// The page instance is claimed only around the API call.
func (f *PasswordFlow) Submit(ctx context.Context, req Request, password, confirm string) Outcome {
	start := time.Now()
	emailHash := utils.HashEmail(req.Email)
	key := controller.Key(req.SessionID, models.PageSetPassword, req.Email)

	if f.guard.InFlight(key) {
		return record(f.journal, models.PageSetPassword, req.Email, start, Outcome{Status: models.OutcomeBusy})
	}

	res := schema.Password(req.Email, password, confirm)
	if !res.OK() {
		logging.DebugLog("Password submission invalid [%s]: %v", emailHash, res.Errors)
		return record(f.journal, models.PageSetPassword, req.Email, start,
			Outcome{Status: models.OutcomeInvalid, FieldErrors: res.Errors})
	}

	if !f.bound(req.SessionID, res.Value.Email) {
		req.sink().Notify(notify.Failure(SignupFailureTitle, UnverifiedEmailNotice))
		return record(f.journal, models.PageSetPassword, req.Email, start, Outcome{Status: models.OutcomeUnbound})
	}

	if !f.guard.Begin(key) {
		return record(f.journal, models.PageSetPassword, req.Email, start, Outcome{Status: models.OutcomeBusy})
	}
	err := func() error {
		defer f.guard.End(key)
		_, err := f.api.Signup(ctx, res.Value)
		return err
	}()

	if err != nil {
		logging.WarnLog("Signup failed [%s]: %v", emailHash, err)
		req.sink().Notify(notify.Failure(SignupFailureTitle, backend.Message(err, SignupFailureFallback)))
		code := backend.StatusCode(err)
		return record(f.journal, models.PageSetPassword, req.Email, start,
			Outcome{Status: failureStatus(code), StatusCode: code})
	}

	req.sink().Notify(notify.Success(SignupCreatedMessage))
	if f.verifications != nil {
		f.verifications.Forget(req.SessionID)
	}

	logging.InfoLog("Signup completed [%s] %v", emailHash, time.Since(start))
	return record(f.journal, models.PageSetPassword, req.Email, start, Outcome{
		Status:   models.OutcomeSucceeded,
		Redirect: f.opts.SuccessRedirect,
	})
}

// bound reports whether email may be used by sessionID. Without strict binding a
// mismatch is only logged.
func (f *PasswordFlow) bound(sessionID, email string) bool {
	if f.verifications == nil {
		return !f.opts.StrictEmailBinding
	}
	verified, ok := f.verifications.Verified(sessionID)
	if ok && verified == email {
		return true
	}
	logging.WarnLog("Password submitted for an email this session did not verify [%s]", utils.HashEmail(email))
	return !f.opts.StrictEmailBinding
}
