package models

import "time"

// Stokvel types.
const (
	TypeSavings    = "Savings"
	TypeRotational = "Rotational"
	TypeInvestment = "Investment"
)

// Contribution frequencies.
const (
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// Stokvel statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

// ValidType reports whether t is a recognized stokvel type.
func ValidType(t string) bool {
	return t == TypeSavings || t == TypeRotational || t == TypeInvestment
}

// ValidFrequency reports whether f is a recognized contribution frequency.
func ValidFrequency(f string) bool {
	return f == FrequencyWeekly || f == FrequencyMonthly || f == FrequencyQuarterly
}

// Rules are the membership and contribution rules of a stokvel.
type Rules struct {
	// MaxMembers caps the member list. Joining a full stokvel fails.
	MaxMembers int `json:"maxMembers"`

	// MinContribution is the smallest accepted contribution amount.
	// Defaults to the stokvel's fixed contribution amount.
	MinContribution float64 `json:"minContribution"`

	// PenaltyRate applies to missed contributions (fraction, e.g. 0.05).
	PenaltyRate float64 `json:"penaltyRate"`

	AllowEarlyWithdrawal bool `json:"allowEarlyWithdrawal"`
}

// Member is one participant's standing within a stokvel.
type Member struct {
	// ID is the member's user ID.
	ID int64 `json:"id"`

	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`

	// Contributions is the member's running contribution total. It is
	// mutated only by the contribution-recording operation, which also
	// updates the stokvel balance by the same amount.
	Contributions float64 `json:"contributions"`

	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Stokvel is a member-pooled savings group.
//
// Invariants maintained by the store:
//   - len(Members) <= Rules.MaxMembers
//   - Balance == sum of Members[].Contributions after every contribution
type Stokvel struct {
	// ID is assigned sequentially by the store.
	ID int64 `json:"id"`

	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`

	// Balance is the pool of accumulated contributions.
	Balance float64 `json:"balance"`

	// TargetAmount is the savings goal. When the creator does not supply
	// one it defaults to contributionAmount * maxMembers * 12.
	TargetAmount float64 `json:"targetAmount"`

	// ContributionAmount is the fixed per-cycle contribution.
	ContributionAmount float64 `json:"contributionAmount"`

	Frequency string   `json:"frequency"`
	Members   []Member `json:"members"`

	// CreatedBy is the user ID of the creator, always the first member.
	CreatedBy int64 `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	Rules     Rules     `json:"rules"`

	// InviteCode is a 6-character uppercase token gating membership.
	// Unique across stokvels.
	InviteCode string `json:"inviteCode"`
}

// MemberByID returns the member with the given user ID, or nil.
func (s *Stokvel) MemberByID(userID int64) *Member {
	for i := range s.Members {
		if s.Members[i].ID == userID {
			return &s.Members[i]
		}
	}
	return nil
}

// HasMember reports whether the user is a member or the creator.
func (s *Stokvel) HasMember(userID int64) bool {
	return s.CreatedBy == userID || s.MemberByID(userID) != nil
}

// Transaction is a synthesized record of a recorded contribution,
// returned to the client for display. Transactions are not persisted.
type Transaction struct {
	ID               string    `json:"id"`
	StokvelID        int64     `json:"stokvelId"`
	UserID           int64     `json:"userId"`
	Type             string    `json:"type"`
	Amount           float64   `json:"amount"`
	PaymentReference string    `json:"paymentReference"`
	Timestamp        time.Time `json:"timestamp"`
	Status           string    `json:"status"`
}
