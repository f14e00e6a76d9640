// Package calculator provides the pure financial projection functions
// behind the education endpoints.
package calculator

import (
	"fmt"
	"math"
)

// SavingsProjection is the outcome of a fixed monthly savings plan with
// compound interest.
type SavingsProjection struct {
	TotalContributions float64 `json:"totalContributions"`
	InterestEarned     float64 `json:"interestEarned"`
	FutureValue        float64 `json:"futureValue"`
	MonthlyAmount      float64 `json:"monthlyAmount"`
	Months             int     `json:"months"`
}

// CalculateSavings computes the future value of a fixed monthly
// contribution series:
//
//	futureValue = monthly * (((1+r)^months - 1) / r), r = annualRate/100/12
//
// A zero rate degrades to simple accumulation (monthly * months).
func CalculateSavings(monthlyAmount float64, months int, annualRatePercent float64) (*SavingsProjection, error) {
	if monthlyAmount <= 0 {
		return nil, fmt.Errorf("monthly amount must be positive")
	}
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive")
	}

	totalContributions := monthlyAmount * float64(months)

	r := annualRatePercent / 100 / 12
	futureValue := totalContributions
	if r != 0 {
		futureValue = monthlyAmount * ((math.Pow(1+r, float64(months)) - 1) / r)
	}

	return &SavingsProjection{
		TotalContributions: totalContributions,
		InterestEarned:     futureValue - totalContributions,
		FutureValue:        futureValue,
		MonthlyAmount:      monthlyAmount,
		Months:             months,
	}, nil
}

// PayoutSlot is one member's turn in a rotational payout schedule.
type PayoutSlot struct {
	Member int     `json:"member"`
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// StokvelProjection is the pool projection for a stokvel.
type StokvelProjection struct {
	TotalPool       float64      `json:"totalPool"`
	IndividualTotal float64      `json:"individualTotal"`
	RotationAmount  float64      `json:"rotationAmount"`
	PayoutSchedule  []PayoutSlot `json:"payoutSchedule"`
}

// CalculateStokvel projects a stokvel pool. Each month's rotation amount
// is members * monthlyContribution, with one payout slot per member in
// order 1..members.
func CalculateStokvel(members int, monthlyContribution float64, durationMonths int) (*StokvelProjection, error) {
	if members <= 0 {
		return nil, fmt.Errorf("must have at least one member")
	}
	if monthlyContribution <= 0 {
		return nil, fmt.Errorf("monthly contribution must be positive")
	}
	if durationMonths <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	rotationAmount := float64(members) * monthlyContribution
	schedule := make([]PayoutSlot, members)
	for i := range schedule {
		schedule[i] = PayoutSlot{
			Member: i + 1,
			Month:  i + 1,
			Amount: rotationAmount,
		}
	}

	return &StokvelProjection{
		TotalPool:       rotationAmount * float64(durationMonths),
		IndividualTotal: monthlyContribution * float64(durationMonths),
		RotationAmount:  rotationAmount,
		PayoutSchedule:  schedule,
	}, nil
}
