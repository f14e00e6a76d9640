// Package momo implements a client for the MTN MoMo-style mobile money
// HTTP API: collections (request-to-pay), disbursements (transfer),
// account balance and the short-lived bearer token that authenticates
// every call.
package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors. Remote failure details are logged, never surfaced to
// API clients beyond these generic messages.
var (
	ErrAuth          = errors.New("failed to authenticate with MoMo API")
	ErrRequestToPay  = errors.New("payment request failed")
	ErrPaymentStatus = errors.New("failed to get payment status")
	ErrBalance       = errors.New("failed to get account balance")
	ErrTransfer      = errors.New("transfer failed")
)

// Payment statuses reported by the provider.
const (
	StatusPending    = "PENDING"
	StatusSuccessful = "SUCCESSFUL"
	StatusFailed     = "FAILED"
)

const defaultCurrency = "EUR"

// Config carries the provider credentials and endpoint settings.
type Config struct {
	// BaseURL is the provider API root, e.g. the MTN sandbox.
	BaseURL string

	// SubscriptionKey is the Ocp-Apim-Subscription-Key product key.
	SubscriptionKey string

	// APIUser and APIKey are the basic-auth credentials exchanged for an
	// access token.
	APIUser string
	APIKey  string

	// TargetEnvironment selects the provider environment (e.g. sandbox).
	TargetEnvironment string
}

// Client calls the mobile money API. It owns a cached access token
// guarded by a mutex; two concurrent requests observing an expired token
// may both refresh, which is harmless since the token exchange is
// idempotent.
type Client struct {
	cfg   Config
	httpc *http.Client

	// now is swapped out in tests.
	now func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Client with a fixed 10 second request timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
		now:   time.Now,
	}
}

// Party identifies a payment counterparty by mobile number.
type Party struct {
	PhoneNumber string `json:"phoneNumber"`
}

// PaymentResult is the normalized outcome of RequestToPay and Transfer.
// The reference ID is generated per call and is the handle for later
// status queries.
type PaymentResult struct {
	Success     bool   `json:"success"`
	ReferenceID string `json:"referenceId"`
	Status      string `json:"status"`
}

// StatusResult is the normalized payment status. Amount is kept in the
// provider's string representation.
type StatusResult struct {
	Success                bool   `json:"success"`
	Status                 string `json:"status"`
	Amount                 string `json:"amount"`
	Currency               string `json:"currency"`
	FinancialTransactionID string `json:"financialTransactionId"`
	ExternalID             string `json:"externalId"`
}

// BalanceResult is the normalized account balance.
type BalanceResult struct {
	Success          bool   `json:"success"`
	AvailableBalance string `json:"availableBalance"`
	Currency         string `json:"currency"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// paymentRequest is the wire shape shared by collections and
// disbursements; exactly one of Payer or Payee is set.
type paymentRequest struct {
	Amount       string   `json:"amount"`
	Currency     string   `json:"currency"`
	ExternalID   string   `json:"externalId"`
	Payer        *partyID `json:"payer,omitempty"`
	Payee        *partyID `json:"payee,omitempty"`
	PayerMessage string   `json:"payerMessage"`
	PayeeNote    string   `json:"payeeNote"`
}

type partyID struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// AccessToken returns the cached bearer token while it is still valid,
// otherwise performs the credential exchange and caches the result.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/collection/token/", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.SetBasicAuth(c.cfg.APIUser, c.cfg.APIKey)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.Error("MoMo token exchange failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("MoMo token exchange rejected", "status", resp.StatusCode, "body", string(body))
		return "", ErrAuth
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	slog.Info("MoMo access token obtained", "expires_in", tok.ExpiresIn)
	return c.accessToken, nil
}

// setCallHeaders applies the headers shared by every authenticated call.
func (c *Client) setCallHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Target-Environment", c.cfg.TargetEnvironment)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
}

// RequestToPay asks the payer to approve a collection. A fresh reference
// ID is generated per call, never reused even for identical external IDs.
// No retry is attempted; retry policy belongs to the caller.
func (c *Client) RequestToPay(ctx context.Context, amount float64, currency, externalID string, payer Party, payerMessage, payeeNote string) (*PaymentResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	referenceID := uuid.NewString()
	body := paymentRequest{
		Amount:       strconv.FormatFloat(amount, 'f', -1, 64),
		Currency:     currencyOrDefault(currency),
		ExternalID:   externalID,
		Payer:        &partyID{PartyIDType: "MSISDN", PartyID: payer.PhoneNumber},
		PayerMessage: payerMessage,
		PayeeNote:    payeeNote,
	}

	if err := c.post(ctx, "/collection/v1_0/requesttopay", referenceID, token, body); err != nil {
		slog.Error("payment request failed", "reference_id", referenceID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRequestToPay, err)
	}

	slog.Info("payment request initiated", "reference_id", referenceID, "external_id", externalID)
	return &PaymentResult{Success: true, ReferenceID: referenceID, Status: StatusPending}, nil
}

// Transfer disburses funds to the payee. Same contract as RequestToPay
// with an independent reference ID.
func (c *Client) Transfer(ctx context.Context, amount float64, currency, externalID string, payee Party, payerMessage, payeeNote string) (*PaymentResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	referenceID := uuid.NewString()
	body := paymentRequest{
		Amount:       strconv.FormatFloat(amount, 'f', -1, 64),
		Currency:     currencyOrDefault(currency),
		ExternalID:   externalID,
		Payee:        &partyID{PartyIDType: "MSISDN", PartyID: payee.PhoneNumber},
		PayerMessage: payerMessage,
		PayeeNote:    payeeNote,
	}

	if err := c.post(ctx, "/disbursement/v1_0/transfer", referenceID, token, body); err != nil {
		slog.Error("transfer failed", "reference_id", referenceID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransfer, err)
	}

	slog.Info("transfer initiated", "reference_id", referenceID, "external_id", externalID)
	return &PaymentResult{Success: true, ReferenceID: referenceID, Status: StatusPending}, nil
}

// post issues an authenticated JSON POST carrying the reference ID and
// accepts any 2xx response.
func (c *Client) post(ctx context.Context, path, referenceID, token string, body paymentRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setCallHeaders(req, token)
	req.Header.Set("X-Reference-Id", referenceID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

// PaymentStatus queries a collection by reference ID.
func (c *Client) PaymentStatus(ctx context.Context, referenceID string) (*StatusResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/collection/v1_0/requesttopay/"+referenceID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentStatus, err)
	}
	c.setCallHeaders(req, token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.Error("payment status query failed", "reference_id", referenceID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentStatus, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("payment status query rejected", "reference_id", referenceID, "status", resp.StatusCode, "body", string(body))
		return nil, ErrPaymentStatus
	}

	var remote struct {
		Status                 string `json:"status"`
		Amount                 string `json:"amount"`
		Currency               string `json:"currency"`
		FinancialTransactionID string `json:"financialTransactionId"`
		ExternalID             string `json:"externalId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentStatus, err)
	}

	return &StatusResult{
		Success:                true,
		Status:                 remote.Status,
		Amount:                 remote.Amount,
		Currency:               remote.Currency,
		FinancialTransactionID: remote.FinancialTransactionID,
		ExternalID:             remote.ExternalID,
	}, nil
}

// AccountBalance queries the collection account balance.
func (c *Client) AccountBalance(ctx context.Context) (*BalanceResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/collection/v1_0/account/balance", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBalance, err)
	}
	c.setCallHeaders(req, token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.Error("balance query failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrBalance, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("balance query rejected", "status", resp.StatusCode, "body", string(body))
		return nil, ErrBalance
	}

	var remote struct {
		AvailableBalance string `json:"availableBalance"`
		Currency         string `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBalance, err)
	}

	return &BalanceResult{
		Success:          true,
		AvailableBalance: remote.AvailableBalance,
		Currency:         remote.Currency,
	}, nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}
