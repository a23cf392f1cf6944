package api

import (
	"net/http"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/flow"
	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/session"
	"github.com/Goofygiraffe06/parewa/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Renderer     *web.Renderer
	Sessions     *session.Provider
	OTP          *flow.OTPFlow
	Passwords    *flow.PasswordFlow
	Journal      Pinger
	MaxBodyBytes int64
	CORSOrigins  []string
}

// NewRouter mounts every page under the session provider.
func NewRouter(d Deps) http.Handler {
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = 64 << 10
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	if len(d.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", HealthHandler(d.Journal))

	router.Group(func(r chi.Router) {
		r.Use(d.Sessions.Middleware)

		r.Get("/verify_otp/{email}", VerifyOTPPageHandler(d.Renderer, d.OTP))
		r.Post("/verify_otp/{email}", VerifyOTPSubmitHandler(d.Renderer, d.OTP, d.MaxBodyBytes))
		r.Get("/set_password/{email}", SetPasswordPageHandler(d.Renderer, d.Passwords))
		r.Post("/set_password/{email}", SetPasswordSubmitHandler(d.Renderer, d.Passwords, d.MaxBodyBytes))
	})

	return router
}

// requestLogger logs one line per request. Paths are logged without the email segment's value.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		logging.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
