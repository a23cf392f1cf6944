// Package journal records submission outcomes off the request path.
package journal

import (
	"context"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/internal/workerpool"
	"github.com/google/uuid"
)

// Store persists attempts.
type Store interface {
	AddAttempt(ctx context.Context, a models.Attempt) error
}

// Writer hands attempts to a worker pool; a full queue drops the row.
type Writer struct {
	store Store
	pool  *workerpool.Pool
}

func NewWriter(store Store, pool *workerpool.Pool) *Writer {
	return &Writer{store: store, pool: pool}
}

// Record fills ID and CreatedAt when empty and enqueues the write.
func (w *Writer) Record(a models.Attempt) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	err := w.pool.Submit(func(ctx context.Context) {
		if err := w.store.AddAttempt(ctx, a); err != nil {
			logging.ErrorLog("Journal write failed page=%s outcome=%s: %v", a.Page, a.Outcome, err)
		}
	})
	if err != nil {
		logging.WarnLog("Journal entry dropped page=%s outcome=%s: %v", a.Page, a.Outcome, err)
	}
}
