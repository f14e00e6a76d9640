package momo

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stokvela/backend/internal/models"
)

// RecurringPayment is a locally recorded schedule intent. It is not an
// executing billing engine: nothing is persisted and no future charge is
// triggered by this record.
type RecurringPayment struct {
	Success            bool      `json:"success"`
	RecurringPaymentID string    `json:"recurringPaymentId"`
	Status             string    `json:"status"`
	Amount             float64   `json:"amount"`
	Frequency          string    `json:"frequency"`
	NextPaymentDate    time.Time `json:"nextPaymentDate"`
}

// SetupRecurringPayment synthesizes a recurring payment record for the
// given stokvel and user. No remote call is made.
func (c *Client) SetupRecurringPayment(stokvelID, userID int64, amount float64, frequency string) *RecurringPayment {
	slog.Info("setting up recurring payment", "stokvel_id", stokvelID, "user_id", userID, "frequency", frequency)

	return &RecurringPayment{
		Success:            true,
		RecurringPaymentID: uuid.NewString(),
		Status:             "ACTIVE",
		Amount:             amount,
		Frequency:          frequency,
		NextPaymentDate:    nextPaymentDate(c.now(), frequency),
	}
}

// nextPaymentDate computes the next charge date from the frequency.
// Calendar arithmetic follows time.AddDate, so a month-end start date
// normalizes forward (Jan 31 + 1 month = Mar 3).
func nextPaymentDate(now time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return now.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return now.AddDate(0, 1, 0)
	case models.FrequencyQuarterly:
		return now.AddDate(0, 3, 0)
	default:
		return now.AddDate(0, 0, 30)
	}
}
