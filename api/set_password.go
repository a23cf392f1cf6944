package api

import (
	"net/http"

	"github.com/Goofygiraffe06/parewa/internal/flow"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/web"
)

func SetPasswordPageHandler(renderer *web.Renderer, passwords *flow.PasswordFlow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, email, ok := pageContext(w, r, renderer)
		if !ok {
			return
		}

		renderer.Render(w, http.StatusOK, web.PageSetPassword, web.PageData{
			Toasts: sess.TakeFlashes(),
			Email:  email,
			Action: flow.SetPasswordPath(email),
			Busy:   passwords.InFlight(sess.ID(), email),
		})
	}
}

// SetPasswordSubmitHandler handles the password form post. The form is re-rendered
// with its values on every outcome except a configured success redirect.
func SetPasswordSubmitHandler(renderer *web.Renderer, passwords *flow.PasswordFlow, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, email, ok := pageContext(w, r, renderer)
		if !ok {
			return
		}

		var body models.PasswordForm
		if !decodeForm(w, r, maxBody, &body) {
			return
		}
		asJSON := wantsJSON(r)
		if !asJSON {
			body.Password = r.PostFormValue("password")
			body.ConfirmPassword = r.PostFormValue("confirm_password")
		}

		out := passwords.Submit(r.Context(), flow.Request{SessionID: sess.ID(), Email: email, Sink: sess},
			body.Password, body.ConfirmPassword)

		if asJSON {
			respondSubmission(w, sess, out)
			return
		}
		if out.Redirect != "" {
			http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
			return
		}

		renderer.Render(w, statusFor(out), web.PageSetPassword, web.PageData{
			Toasts: sess.TakeFlashes(),
			Email:  email,
			Action: flow.SetPasswordPath(email),
			Values: map[string]string{
				"password":         body.Password,
				"confirm_password": body.ConfirmPassword,
			},
			FieldErrors: out.FieldErrors,
			Busy:        out.Busy(),
		})
	}
}
