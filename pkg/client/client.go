// Package client is a Go facade over the Stokvela REST API, mirroring
// the mobile app's service layer: it attaches the stored bearer token to
// every call and clears it when the backend answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// The stored token has already been cleared when this is returned; the
// caller must log in again.
var ErrUnauthorized = errors.New("unauthorized")

// TokenStore abstracts the device's secure token storage.
type TokenStore interface {
	// Token returns the stored token, or empty string when logged out.
	Token() (string, error)

	// SetToken replaces the stored token.
	SetToken(token string) error

	// Clear removes the stored token.
	Clear() error
}

// FieldError is one field-level validation failure from the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the backend's response wrapper. Data is left raw so the
// caller can decode the shape it expects.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`

	// Token and User are set on auth responses only.
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Client calls the Stokvela backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
}

// New creates a Client with a fixed 10 second request timeout.
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

// do issues a request with the stored token attached. A 401 clears the
// token and returns ErrUnauthorized; other statuses return the decoded
// envelope, with a non-nil error when success is false.
func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Clear(); err != nil {
			return nil, err
		}
		return nil, ErrUnauthorized
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if !env.Success {
		if env.Message != "" {
			return &env, errors.New(env.Message)
		}
		return &env, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return &env, nil
}

func (c *Client) get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// RegisterRequest carries a registration call.
type RegisterRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PIN         string `json:"pin"`
	Language    string `json:"language,omitempty"`
}

// Register opens an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Envelope, error) {
	env, err := c.post(ctx, "/auth/register", req)
	if err != nil {
		return env, err
	}
	if env.Token != "" {
		if err := c.tokens.SetToken(env.Token); err != nil {
			return env, err
		}
	}
	return env, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, phoneNumber, pin string) (*Envelope, error) {
	env, err := c.post(ctx, "/auth/login", map[string]string{
		"phoneNumber": phoneNumber,
		"pin":         pin,
	})
	if err != nil {
		return env, err
	}
	if env.Token != "" {
		if err := c.tokens.SetToken(env.Token); err != nil {
			return env, err
		}
	}
	return env, nil
}

// Stokvels lists the caller's stokvels.
func (c *Client) Stokvels(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/stokvels")
}

// CreateStokvel creates a stokvel. body is passed through unchanged.
func (c *Client) CreateStokvel(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/stokvels", body)
}

// Stokvel fetches one stokvel with the caller's annotations.
func (c *Client) Stokvel(ctx context.Context, stokvelID int64) (*Envelope, error) {
	return c.get(ctx, fmt.Sprintf("/stokvels/%d", stokvelID))
}

// JoinStokvel joins with an invite code.
func (c *Client) JoinStokvel(ctx context.Context, stokvelID int64, inviteCode string) (*Envelope, error) {
	return c.post(ctx, fmt.Sprintf("/stokvels/%d/join", stokvelID), map[string]string{
		"inviteCode": inviteCode,
	})
}

// Contribute records a contribution against a payment reference.
func (c *Client) Contribute(ctx context.Context, stokvelID int64, amount float64, paymentReference string) (*Envelope, error) {
	return c.post(ctx, fmt.Sprintf("/stokvels/%d/contribute", stokvelID), map[string]any{
		"amount":           amount,
		"paymentReference": paymentReference,
	})
}

// Votes lists the caller's votes.
func (c *Client) Votes(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/votes")
}

// CastVote casts a ballot.
func (c *Client) CastVote(ctx context.Context, voteID int64, option string) (*Envelope, error) {
	return c.post(ctx, fmt.Sprintf("/votes/%d/cast", voteID), map[string]string{
		"option": option,
	})
}

// RequestPayment starts a MoMo collection. body is passed through.
func (c *Client) RequestPayment(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/momo/request-payment", body)
}

// PaymentStatus queries a collection by reference ID.
func (c *Client) PaymentStatus(ctx context.Context, referenceID string) (*Envelope, error) {
	return c.get(ctx, "/momo/payment-status/"+url.PathEscape(referenceID))
}

// MomoBalance fetches the collection account balance.
func (c *Client) MomoBalance(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/momo/balance")
}

// Transfer starts a MoMo disbursement. body is passed through.
func (c *Client) Transfer(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/momo/transfer", body)
}

// SetupRecurringPayment records a recurring payment intent.
func (c *Client) SetupRecurringPayment(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/momo/setup-recurring", body)
}

// EducationModules lists the literacy modules for a language.
func (c *Client) EducationModules(ctx context.Context, language string) (*Envelope, error) {
	return c.get(ctx, "/education/modules?lang="+url.QueryEscape(language))
}

// EducationModule fetches one module.
func (c *Client) EducationModule(ctx context.Context, moduleID int64, language string) (*Envelope, error) {
	return c.get(ctx, fmt.Sprintf("/education/modules/%d?lang=%s", moduleID, url.QueryEscape(language)))
}

// SaveProgress reports lesson progress.
func (c *Client) SaveProgress(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/education/progress", body)
}

// Progress fetches the caller's education progress.
func (c *Client) Progress(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/education/progress")
}

// CalculateSavings runs the savings projection.
func (c *Client) CalculateSavings(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/education/calculate/savings", body)
}

// CalculateStokvel runs the stokvel pool projection.
func (c *Client) CalculateStokvel(ctx context.Context, body any) (*Envelope, error) {
	return c.post(ctx, "/education/calculate/stokvel", body)
}

// Analytics fetches the caller's savings overview.
func (c *Client) Analytics(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/analytics")
}

// StokvelAnalytics fetches one stokvel's analytics.
func (c *Client) StokvelAnalytics(ctx context.Context, stokvelID int64) (*Envelope, error) {
	return c.get(ctx, fmt.Sprintf("/analytics/stokvel/%d", stokvelID))
}

// Insights fetches personalized insights.
func (c *Client) Insights(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/analytics/insights")
}
