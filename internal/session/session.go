// Package session provides the per-visitor context every page is rendered in.
//
// A Provider is constructed once at startup and installed as middleware. For each
// request it loads the visitor's Session from a signed cookie (or starts a new one)
// and makes it available through the request context. Pending toasts ride in the
// cookie so they survive a redirect.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/auth"
	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Session is one visitor's state for the lifetime of the cookie.
type Session struct {
	id    string
	isNew bool

	mu      sync.Mutex
	flashes []models.Toast
	dirty   bool
}

func (s *Session) ID() string { return s.id }

// Notify queues t for the next rendered page. Session satisfies notify.Sink.
func (s *Session) Notify(t models.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, t)
	s.dirty = true
}

// TakeFlashes returns and clears the queued toasts.
func (s *Session) TakeFlashes() []models.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	if len(out) > 0 {
		s.flashes = nil
		s.dirty = true
	}
	return out
}

func (s *Session) snapshot() (flashes []models.Toast, persist bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Toast(nil), s.flashes...), s.isNew || s.dirty
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session installed by the provider middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

type claims struct {
	jwt.RegisteredClaims
	Flash []models.Toast `json:"flash,omitempty"`
}

// Options configures a Provider.
type Options struct {
	CookieName string
	Issuer     string
	TTL        time.Duration
	Secure     bool
}

// Provider loads and persists sessions.
type Provider struct {
	opts Options
}

func NewProvider(opts Options) *Provider {
	if opts.CookieName == "" {
		opts.CookieName = "parewa_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	return &Provider{opts: opts}
}

// Middleware wraps every route so handlers can rely on FromContext.
func (p *Provider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := p.load(r)
		if err != nil {
			logging.ErrorLog("Session start failed: %v", err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}

		sw := &sessionWriter{ResponseWriter: w, provider: p, session: s}
		next.ServeHTTP(sw, r.WithContext(WithSession(r.Context(), s)))
		sw.commit()
	})
}

// New starts a fresh session.
func (p *Provider) New() (*Session, error) {
	id, err := auth.GenerateNonce()
	if err != nil {
		return nil, err
	}
	return &Session{id: id, isNew: true}, nil
}

func (p *Provider) load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(p.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return p.New()
	}

	var c claims
	if err := auth.ParseClaims(cookie.Value, p.opts.Issuer, &c); err != nil || c.Subject == "" {
		logging.DebugLog("Session cookie rejected, starting a new session")
		return p.New()
	}
	return &Session{id: c.Subject, flashes: c.Flash}, nil
}

// Encode signs s into a cookie value.
func (p *Provider) Encode(s *Session) (string, error) {
	flashes, _ := s.snapshot()
	now := time.Now()
	return auth.SignClaims(claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.id,
			Issuer:    p.opts.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.opts.TTL)),
		},
		Flash: flashes,
	})
}

func (p *Provider) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     p.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(p.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   p.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionWriter writes the session cookie just before the response headers go out.
type sessionWriter struct {
	http.ResponseWriter
	provider  *Provider
	session   *Session
	committed bool
}

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true

	if _, persist := w.session.snapshot(); !persist {
		return
	}
	value, err := w.provider.Encode(w.session)
	if err != nil {
		logging.ErrorLog("Session cookie encoding failed: %v", err)
		return
	}
	http.SetCookie(w.ResponseWriter, w.provider.cookie(value))
}

func (w *sessionWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
