// Package web renders pages inside the shared root layout.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/internal/schema"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names double as template file names.
const (
	PageVerifyOTP   = models.PageVerifyOTP
	PageSetPassword = models.PageSetPassword
	PageError       = "error"
)

// Meta is the document metadata applied to every page.
type Meta struct {
	Title       string
	Description string
}

// PageData is everything a page template may read.
type PageData struct {
	Meta        Meta
	Toasts      []models.Toast
	Email       string
	Action      string
	Values      map[string]string
	FieldErrors map[string]string
	Busy        bool
	OTPLength   int
	Message     string
}

// Renderer executes a page through the layout.
type Renderer struct {
	meta  Meta
	pages map[string]*template.Template
}

func NewRenderer(meta Meta) (*Renderer, error) {
	r := &Renderer{meta: meta, pages: make(map[string]*template.Template)}
	for _, page := range []string{PageVerifyOTP, PageSetPassword, PageError} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Meta returns the layout metadata.
func (r *Renderer) Meta() Meta { return r.meta }

// Render writes page with status. Metadata and OTP length are filled in here.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	t, ok := r.pages[page]
	if !ok {
		logging.ErrorLog("Render failed: unknown page %q", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data.Meta = r.meta
	data.OTPLength = schema.OTPLength

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.ErrorLog("Render failed: page %s: %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.DebugLog("Render write failed: page %s: %v", page, err)
	}
}
