package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(journal Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if journal != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := journal.Ping(ctx); err != nil {
				logging.ErrorLog("Health check failed: journal unreachable: %v", err)
				respondJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "journal unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	}
}
