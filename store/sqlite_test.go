package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/models"
	"github.com/Goofygiraffe06/parewa/store"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreAttempts(t *testing.T) {
	ctx := context.Background()

	t.Run("add and list newest first", func(t *testing.T) {
		s := setupStore(t)
		base := time.Now().Truncate(time.Millisecond)

		attempts := []models.Attempt{
			{ID: "a1", Page: models.PageVerifyOTP, EmailHash: "h1", Outcome: models.OutcomeRejected, StatusCode: 400, Duration: 12 * time.Millisecond, CreatedAt: base},
			{ID: "a2", Page: models.PageVerifyOTP, EmailHash: "h1", Outcome: models.OutcomeSucceeded, StatusCode: 0, Duration: 8 * time.Millisecond, CreatedAt: base.Add(time.Second)},
			{ID: "a3", Page: models.PageSetPassword, EmailHash: "h1", Outcome: models.OutcomeSucceeded, CreatedAt: base.Add(2 * time.Second)},
		}
		for _, a := range attempts {
			if err := s.AddAttempt(ctx, a); err != nil {
				t.Fatalf("AddAttempt(%s) failed: %v", a.ID, err)
			}
		}

		got, err := s.RecentAttempts(ctx, 2)
		if err != nil {
			t.Fatalf("RecentAttempts failed: %v", err)
		}
		if len(got) != 2 || got[0].ID != "a3" || got[1].ID != "a2" {
			t.Fatalf("unexpected order: %+v", got)
		}
		if got[1].Duration != 8*time.Millisecond || !got[1].CreatedAt.Equal(base.Add(time.Second)) {
			t.Errorf("round trip lost data: %+v", got[1])
		}
	})

	t.Run("count by outcome", func(t *testing.T) {
		s := setupStore(t)
		now := time.Now()
		for i, outcome := range []string{models.OutcomeInvalid, models.OutcomeInvalid, models.OutcomeSucceeded} {
			a := models.Attempt{ID: string(rune('a' + i)), Page: models.PageSetPassword, Outcome: outcome, CreatedAt: now}
			if err := s.AddAttempt(ctx, a); err != nil {
				t.Fatalf("AddAttempt failed: %v", err)
			}
		}

		n, err := s.CountOutcome(ctx, models.PageSetPassword, models.OutcomeInvalid)
		if err != nil || n != 2 {
			t.Errorf("CountOutcome() = %d, %v", n, err)
		}
		n, _ = s.CountOutcome(ctx, models.PageVerifyOTP, models.OutcomeInvalid)
		if n != 0 {
			t.Errorf("expected 0 for other page, got %d", n)
		}
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		s := setupStore(t)
		a := models.Attempt{ID: "dup", Page: models.PageVerifyOTP, Outcome: models.OutcomeBusy, CreatedAt: time.Now()}
		if err := s.AddAttempt(ctx, a); err != nil {
			t.Fatalf("first insert failed: %v", err)
		}
		if err := s.AddAttempt(ctx, a); err == nil {
			t.Error("expected constraint error on duplicate id")
		}
	})

	t.Run("ping", func(t *testing.T) {
		s := setupStore(t)
		if err := s.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}
