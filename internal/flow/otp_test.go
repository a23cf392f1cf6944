package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Goofygiraffe06/parewa/internal/backend"
	"github.com/Goofygiraffe06/parewa/internal/controller"
	"github.com/Goofygiraffe06/parewa/internal/flow"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/internal/notify"
	"github.com/google/go-cmp/cmp"
)

const testEmail = "user@example.com"

func TestOTPFlowSubmit(t *testing.T) {
	t.Run("verified code redirects to set password", func(t *testing.T) {
		api := &fakeAPI{}
		verifications := newMemVerifications()
		journal := &memJournal{}
		f := flow.NewOTPFlow(api, controller.NewSubmissionRegistry(), verifications, journal)
		sink := &notify.Recorder{}

		out := f.Submit(context.Background(), flow.Request{SessionID: "s1", Email: testEmail, Sink: sink}, "482913")

		if !out.Succeeded() {
			t.Fatalf("expected success, got %+v", out)
		}
		if out.Redirect != "/set_password/user%40example.com" {
			t.Errorf("unexpected redirect %q", out.Redirect)
		}
		want := []models.Toast{{Title: "Success", Description: "OTP Verified Successfully", Variant: notify.VariantDefault}}
		if diff := cmp.Diff(want, sink.Toasts()); diff != "" {
			t.Errorf("toasts mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]models.OTPSubmission{{Email: testEmail, OTP: "482913"}}, api.otpCalls); diff != "" {
			t.Errorf("api calls mismatch (-want +got):\n%s", diff)
		}
		if email, ok := verifications.Verified("s1"); !ok || email != testEmail {
			t.Errorf("session not bound to verified email: %q %v", email, ok)
		}
		if diff := cmp.Diff([]string{models.OutcomeSucceeded}, journal.outcomes()); diff != "" {
			t.Errorf("journal mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid codes never reach the api", func(t *testing.T) {
		for _, otp := range []string{"", "1", "12345", "1234567", "abcdef", "12 456", "١٢٣٤٥٦"} {
			api := &fakeAPI{}
			sink := &notify.Recorder{}
			f := flow.NewOTPFlow(api, controller.NewSubmissionRegistry(), nil, nil)

			out := f.Submit(context.Background(), flow.Request{SessionID: "s1", Email: testEmail, Sink: sink}, otp)

			if !out.Invalid() || out.FieldErrors["otp"] == "" {
				t.Errorf("otp %q: expected field error, got %+v", otp, out)
			}
			if api.calls() != 0 {
				t.Errorf("otp %q: api was called", otp)
			}
			if len(sink.Toasts()) != 0 {
				t.Errorf("otp %q: unexpected toasts %v", otp, sink.Toasts())
			}
		}
	})

	t.Run("rejected code shows server message and releases the page", func(t *testing.T) {
		api := &fakeAPI{err: &backend.Error{StatusCode: 400, Path: backend.VerifyOTPPath, Message: "Invalid code"}}
		guard := controller.NewSubmissionRegistry()
		verifications := newMemVerifications()
		f := flow.NewOTPFlow(api, guard, verifications, nil)
		sink := &notify.Recorder{}

		out := f.Submit(context.Background(), flow.Request{SessionID: "s1", Email: testEmail, Sink: sink}, "000000")

		if out.Status != models.OutcomeRejected || out.StatusCode != 400 || out.Redirect != "" {
			t.Errorf("unexpected outcome %+v", out)
		}
		want := []models.Toast{{Title: "Invalid OTP", Description: "Invalid code", Variant: notify.VariantDestructive}}
		if diff := cmp.Diff(want, sink.Toasts()); diff != "" {
			t.Errorf("toasts mismatch (-want +got):\n%s", diff)
		}
		if f.InFlight("s1", testEmail) || guard.Count() != 0 {
			t.Error("page instance still marked in flight")
		}
		if _, ok := verifications.Verified("s1"); ok {
			t.Error("failed verification must not bind the session")
		}
	})

	t.Run("transport failure uses fallback message", func(t *testing.T) {
		api := &fakeAPI{err: errors.New("connection refused")}
		f := flow.NewOTPFlow(api, controller.NewSubmissionRegistry(), nil, nil)
		sink := &notify.Recorder{}

		out := f.Submit(context.Background(), flow.Request{SessionID: "s1", Email: testEmail, Sink: sink}, "123456")

		if out.Status != models.OutcomeFailed {
			t.Errorf("expected failed outcome, got %+v", out)
		}
		toasts := sink.Toasts()
		if len(toasts) != 1 || toasts[0].Description != "Verification failed." {
			t.Errorf("unexpected toasts %v", toasts)
		}
	})

	t.Run("duplicate submission while in flight is refused", func(t *testing.T) {
		api := &fakeAPI{}
		f := flow.NewOTPFlow(api, controller.NewSubmissionRegistry(), nil, nil)
		req := flow.Request{SessionID: "s1", Email: testEmail}

		var nested flow.Outcome
		api.onRequest = func() {
			if !f.InFlight("s1", testEmail) {
				t.Error("expected page instance to be in flight during the call")
			}
			nested = f.Submit(context.Background(), req, "123456")
		}

		out := f.Submit(context.Background(), req, "123456")
		if !out.Succeeded() {
			t.Errorf("outer submission should succeed, got %+v", out)
		}
		if !nested.Busy() {
			t.Errorf("nested submission should be busy, got %+v", nested)
		}
		if api.calls() != 1 {
			t.Errorf("expected exactly one api call, got %d", api.calls())
		}
		if f.InFlight("s1", testEmail) {
			t.Error("page instance still in flight after completion")
		}
	})

	t.Run("other sessions are independent", func(t *testing.T) {
		api := &fakeAPI{}
		f := flow.NewOTPFlow(api, controller.NewSubmissionRegistry(), nil, nil)

		var other flow.Outcome
		api.onRequest = func() {
			api.onRequest = nil
			other = f.Submit(context.Background(), flow.Request{SessionID: "s2", Email: testEmail}, "123456")
		}
		f.Submit(context.Background(), flow.Request{SessionID: "s1", Email: testEmail}, "123456")

		if !other.Succeeded() {
			t.Errorf("second session should not be blocked, got %+v", other)
		}
	})
}
