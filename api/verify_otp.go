package api

import (
	"net/http"

	"github.com/Goofygiraffe06/parewa/internal/flow"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/web"
)

// VerifyOTPPageHandler renders the OTP form for the email in the path.
func VerifyOTPPageHandler(renderer *web.Renderer, otp *flow.OTPFlow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, email, ok := pageContext(w, r, renderer)
		if !ok {
			return
		}

		renderer.Render(w, http.StatusOK, web.PageVerifyOTP, web.PageData{
			Toasts: sess.TakeFlashes(),
			Email:  email,
			Action: flow.VerifyOTPPath(email),
			Busy:   otp.InFlight(sess.ID(), email),
		})
	}
}

// VerifyOTPSubmitHandler handles the OTP form post. A verified code navigates to
// the set-password page with 303 so the post is not replayed from history.
func VerifyOTPSubmitHandler(renderer *web.Renderer, otp *flow.OTPFlow, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, email, ok := pageContext(w, r, renderer)
		if !ok {
			return
		}

		var body models.OTPForm
		if !decodeForm(w, r, maxBody, &body) {
			return
		}
		asJSON := wantsJSON(r)
		if !asJSON {
			body.OTP = r.PostFormValue("otp")
		}

		out := otp.Submit(r.Context(), flow.Request{SessionID: sess.ID(), Email: email, Sink: sess}, body.OTP)

		if asJSON {
			respondSubmission(w, sess, out)
			return
		}
		if out.Redirect != "" {
			http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
			return
		}

		renderer.Render(w, statusFor(out), web.PageVerifyOTP, web.PageData{
			Toasts:      sess.TakeFlashes(),
			Email:       email,
			Action:      flow.VerifyOTPPath(email),
			Values:      map[string]string{"otp": body.OTP},
			FieldErrors: out.FieldErrors,
			Busy:        out.Busy(),
		})
	}
}
