package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/web"
)

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	r, err := web.NewRenderer(web.Meta{Title: "Parewa", Description: "Signup <beta>"})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func TestRender(t *testing.T) {
	r := newRenderer(t)

	t.Run("layout metadata and toasts", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.Render(rr, http.StatusOK, web.PageVerifyOTP, web.PageData{
			Action: "/verify_otp/user%40example.com",
			Toasts: []models.Toast{{Title: "Invalid OTP", Description: "<b>nope</b>", Variant: "destructive"}},
		})

		body := rr.Body.String()
		for _, want := range []string{
			"<title>Parewa</title>",
			`content="Signup &lt;beta&gt;"`,
			`class="toast toast-destructive"`,
			"&lt;b&gt;nope&lt;/b&gt;",
			`maxlength="6"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body does not contain %q", want)
			}
		}
		if rr.Header().Get("Cache-Control") != "no-store" {
			t.Error("pages must not be cached")
		}
	})

	t.Run("error page", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.Render(rr, http.StatusBadRequest, web.PageError, web.PageData{Message: "The link you followed is not valid."})
		if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "The link you followed is not valid.") {
			t.Errorf("got %d %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.Render(rr, http.StatusOK, "missing", web.PageData{})
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rr.Code)
		}
	})
}
