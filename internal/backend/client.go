// Package backend talks to the signup API that owns OTP verification and accounts.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/models"
)

const (
	VerifyOTPPath = "/api/verify_otp"
	SignupPath    = "/api/signup"

	maxResponseBytes = 1 << 20
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API origin, e.g. "http://localhost:8080".
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Timeout bounds each call. Zero leaves the caller's context in charge.
	Timeout time.Duration
}

// Client is a JSON client for the signup API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("backend: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		timeout:    cfg.Timeout,
	}, nil
}

// VerifyOTP submits {email, otp}.
func (c *Client) VerifyOTP(ctx context.Context, sub models.OTPSubmission) (*models.APIResponse, error) {
	return c.post(ctx, VerifyOTPPath, sub)
}

// Signup submits {email, password, confirm_password}.
func (c *Client) Signup(ctx context.Context, sub models.PasswordSubmission) (*models.APIResponse, error) {
	return c.post(ctx, SignupPath, sub)
}

// post sends body as JSON. On 2xx it returns the decoded body (an empty or
// non-JSON body is still a success); otherwise it returns an *Error.
func (c *Client) post(ctx context.Context, path string, body any) (*models.APIResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to encode request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("backend: failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("backend: request to POST %s failed: %w", path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: failed to read response body: %w", err)
	}
	logging.DebugLog("Backend POST %s -> %d %v", path, response.StatusCode, time.Since(start))

	var decoded models.APIResponse
	jsonErr := json.Unmarshal(responseBody, &decoded)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if jsonErr != nil {
			decoded = models.APIResponse{Success: true}
		}
		return &decoded, nil
	}

	apiErr := &Error{StatusCode: response.StatusCode, Path: path}
	if jsonErr == nil {
		apiErr.Message = strings.TrimSpace(decoded.Message)
	}
	return nil, apiErr
}
