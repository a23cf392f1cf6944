package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/Goofygiraffe06/parewa/internal/flow"
	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/internal/session"
	"github.com/Goofygiraffe06/parewa/internal/utils"
	"github.com/Goofygiraffe06/parewa/web"
	"github.com/go-chi/chi/v5"
)

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.ErrorLog("JSON encoding failed: %v", err)
	}
}

// wantsJSON reports whether the form was posted as JSON rather than urlencoded.
func wantsJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// statusFor maps a submission outcome onto the response status.
func statusFor(out flow.Outcome) int {
	switch out.Status {
	case models.OutcomeSucceeded:
		return http.StatusOK
	case models.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case models.OutcomeBusy:
		return http.StatusConflict
	case models.OutcomeUnbound:
		return http.StatusForbidden
	case models.OutcomeRejected:
		if out.StatusCode >= 400 && out.StatusCode < 500 {
			return out.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func respondSubmission(w http.ResponseWriter, sess *session.Session, out flow.Outcome) {
	respondJSON(w, statusFor(out), models.SubmissionResponse{
		Status:      out.Status,
		Toasts:      sess.TakeFlashes(),
		FieldErrors: out.FieldErrors,
		Redirect:    out.Redirect,
	})
}

// pageContext resolves the session and the decoded {email} route segment.
// On failure it has already written the response.
func pageContext(w http.ResponseWriter, r *http.Request, renderer *web.Renderer) (*session.Session, string, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		logging.ErrorLog("Page served without session middleware: %s", r.URL.Path)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, "", false
	}

	email, err := utils.DecodePathEmail(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		logging.DebugLog("Rejected malformed email path segment: %s", r.URL.Path)
		if wantsJSON(r) {
			respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid email in path"})
		} else {
			renderer.Render(w, http.StatusBadRequest, web.PageError, web.PageData{
				Message: "The link you followed is not valid.",
			})
		}
		return nil, "", false
	}
	return sess, email, true
}

// decodeForm reads a JSON or urlencoded body into fields. On failure it has already written the response.
func decodeForm(w http.ResponseWriter, r *http.Request, maxBody int64, jsonBody interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	var err error
	if wantsJSON(r) {
		err = json.NewDecoder(r.Body).Decode(jsonBody)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		logging.DebugLog("Form decoding failed %s: %v", r.URL.Path, err)
		respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}
