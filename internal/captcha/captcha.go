package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dental-clinic-server/internal/config"
)

// ErrService indicates the verification service itself failed (network error
// or non-success HTTP status). Distinct from a failed verification.
var ErrService = errors.New("captcha verification service unavailable")

// VerificationError indicates the service answered but rejected the token.
type VerificationError struct {
	Codes []string
}

func (e *VerificationError) Error() string {
	if len(e.Codes) == 0 {
		return "captcha verification failed"
	}
	return "captcha verification failed: " + strings.Join(e.Codes, ", ")
}

// Verifier checks a caller-supplied CAPTCHA token. Implementations return
// nil on success, ErrService when the upstream call fails, or a
// *VerificationError when the token is rejected.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Google verifies tokens against the reCAPTCHA siteverify endpoint.
type Google struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewGoogle creates a verifier from config. The HTTP client timeout bounds
// how long an intake request can stay suspended on verification.
func NewGoogle(cfg config.RecaptchaConfig) *Google {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Google{
		secret:    cfg.Secret,
		verifyURL: cfg.VerifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify performs a single verification call. Never retried.
func (g *Google) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", g.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrService, resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: %v", ErrService, err)
	}

	if !result.Success {
		return &VerificationError{Codes: result.ErrorCodes}
	}
	return nil
}
