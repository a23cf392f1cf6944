// Package notify carries toast notifications from form handling to whatever renders them.
package notify

import (
	"sync"

	"github.com/Goofygiraffe06/parewa/internal/models"
)

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Sink receives toasts. Notify must not block and has no result.
type Sink interface {
	Notify(t models.Toast)
}

// Success builds a default-variant toast titled "Success".
func Success(description string) models.Toast {
	return models.Toast{Title: "Success", Description: description, Variant: VariantDefault}
}

// Failure builds a destructive toast.
func Failure(title, description string) models.Toast {
	return models.Toast{Title: title, Description: description, Variant: VariantDestructive}
}

// Recorder is a Sink that keeps every toast in memory.
type Recorder struct {
	mu     sync.Mutex
	toasts []models.Toast
}

func (r *Recorder) Notify(t models.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of what has been recorded so far.
func (r *Recorder) Toasts() []models.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Discard drops every toast.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(models.Toast) {}
