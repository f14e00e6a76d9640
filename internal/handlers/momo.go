package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/momo"
)

// stokvelCurrency is the currency used for all stokvel payments.
const stokvelCurrency = "ZAR"

// MomoHandler serves the mobile money endpoints.
type MomoHandler struct {
	client *momo.Client
}

// NewMomoHandler creates a new MomoHandler.
func NewMomoHandler(client *momo.Client) *MomoHandler {
	return &MomoHandler{client: client}
}

// upstreamMessage reduces a gateway error to its generic sentinel text;
// raw provider detail stays in the logs.
func upstreamMessage(err error) string {
	for _, sentinel := range []error{
		momo.ErrAuth,
		momo.ErrRequestToPay,
		momo.ErrPaymentStatus,
		momo.ErrBalance,
		momo.ErrTransfer,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "payment provider error"
}

type paymentRequest struct {
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phoneNumber"`
	StokvelID   int64   `json:"stokvelId"`
	Message     string  `json:"message"`
}

func validatePayment(req paymentRequest) []FieldError {
	var errs []FieldError
	if req.Amount <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount must be a positive number"})
	}
	if !validPhone(req.PhoneNumber) {
		errs = append(errs, FieldError{Field: "phoneNumber", Message: "Valid phone number required"})
	}
	if req.StokvelID == 0 {
		errs = append(errs, FieldError{Field: "stokvelId", Message: "Valid stokvel ID required"})
	}
	return errs
}

// RequestPayment handles POST /momo/request-payment.
func (h *MomoHandler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validatePayment(req); errs != nil {
		respondValidation(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	externalID := fmt.Sprintf("stokvel_%d_%d_%d", req.StokvelID, userID, time.Now().UnixMilli())

	message := req.Message
	if message == "" {
		message = "Stokvel contribution payment"
	}

	result, err := h.client.RequestToPay(
		r.Context(),
		req.Amount,
		stokvelCurrency,
		externalID,
		momo.Party{PhoneNumber: req.PhoneNumber},
		message,
		"Payment for stokvel contribution",
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, upstreamMessage(err))
		return
	}
	respondData(w, http.StatusOK, result)
}

// PaymentStatus handles GET /momo/payment-status/{referenceId}.
func (h *MomoHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	referenceID := mux.Vars(r)["referenceId"]

	result, err := h.client.PaymentStatus(r.Context(), referenceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, upstreamMessage(err))
		return
	}
	respondData(w, http.StatusOK, result)
}

// Balance handles GET /momo/balance.
func (h *MomoHandler) Balance(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.AccountBalance(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, upstreamMessage(err))
		return
	}
	respondData(w, http.StatusOK, result)
}

// Transfer handles POST /momo/transfer.
func (h *MomoHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validatePayment(req); errs != nil {
		respondValidation(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	externalID := fmt.Sprintf("payout_%d_%d_%d", req.StokvelID, userID, time.Now().UnixMilli())

	message := req.Message
	if message == "" {
		message = "Stokvel payout"
	}

	result, err := h.client.Transfer(
		r.Context(),
		req.Amount,
		stokvelCurrency,
		externalID,
		momo.Party{PhoneNumber: req.PhoneNumber},
		message,
		"Payout from stokvel",
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, upstreamMessage(err))
		return
	}
	respondData(w, http.StatusOK, result)
}

type recurringRequest struct {
	StokvelID int64   `json:"stokvelId"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
}

// SetupRecurring handles POST /momo/setup-recurring.
func (h *MomoHandler) SetupRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []FieldError
	if req.StokvelID == 0 {
		errs = append(errs, FieldError{Field: "stokvelId", Message: "Valid stokvel ID required"})
	}
	if req.Amount <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount must be a positive number"})
	}
	if !models.ValidFrequency(req.Frequency) {
		errs = append(errs, FieldError{Field: "frequency", Message: "Valid frequency required"})
	}
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	result := h.client.SetupRecurringPayment(req.StokvelID, middleware.GetUserID(r.Context()), req.Amount, req.Frequency)
	respondData(w, http.StatusOK, result)
}
