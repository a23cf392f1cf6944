package flow_test

import (
	"context"
	"sync"

	"github.com/Goofygiraffe06/parewa/internal/models"
)

// fakeAPI stands in for the signup backend.
type fakeAPI struct {
	mu        sync.Mutex
	err       error
	otpCalls  []models.OTPSubmission
	signups   []models.PasswordSubmission
	onRequest func()
}

func (f *fakeAPI) VerifyOTP(ctx context.Context, sub models.OTPSubmission) (*models.APIResponse, error) {
	f.mu.Lock()
	f.otpCalls = append(f.otpCalls, sub)
	hook, err := f.onRequest, f.err
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return &models.APIResponse{Success: true}, nil
}

func (f *fakeAPI) Signup(ctx context.Context, sub models.PasswordSubmission) (*models.APIResponse, error) {
	f.mu.Lock()
	f.signups = append(f.signups, sub)
	hook, err := f.onRequest, f.err
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return &models.APIResponse{Success: true}, nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.otpCalls) + len(f.signups)
}

type memJournal struct {
	mu      sync.Mutex
	entries []models.Attempt
}

func (j *memJournal) Record(a models.Attempt) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, a)
}

func (j *memJournal) outcomes() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []string
	for _, e := range j.entries {
		out = append(out, e.Outcome)
	}
	return out
}

type memVerifications struct {
	mu    sync.Mutex
	bound map[string]string
}

func newMemVerifications() *memVerifications {
	return &memVerifications{bound: make(map[string]string)}
}

func (v *memVerifications) Remember(sessionID, email string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bound[sessionID] = email
	return nil
}

func (v *memVerifications) Verified(sessionID string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	email, ok := v.bound[sessionID]
	return email, ok
}

func (v *memVerifications) Forget(sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.bound, sessionID)
}
