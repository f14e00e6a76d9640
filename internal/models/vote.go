package models

import "time"

// Vote types.
const (
	VoteInvestment   = "investment"
	VoteDistribution = "distribution"
	VoteMembership   = "membership"
	VoteGeneral      = "general"
)

// Vote statuses.
const (
	VoteActive    = "active"
	VoteCompleted = "completed"
	VoteCancelled = "cancelled"
)

// Vote is a group decision put to the members of a stokvel.
//
// Invariant maintained by the store: YesVotes + NoVotes == TotalVotes.
// Ballots are tracked per user in VotedBy, so a member can vote at most
// once; HasVoted is the boolean view of VotedBy for the requesting user,
// filled in by the service layer.
type Vote struct {
	// ID is assigned sequentially by the store.
	ID int64 `json:"id"`

	Title string `json:"title"`

	StokvelID int64 `json:"stokvelId"`

	// Stokvel is the display name of the owning stokvel.
	Stokvel string `json:"stokvel"`

	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	EndDate     time.Time `json:"endDate"`

	TotalVotes    int `json:"totalVotes"`
	RequiredVotes int `json:"requiredVotes"`

	// HasVoted is computed for the requesting user; it is not stored.
	HasVoted bool `json:"hasVoted"`

	YesVotes int `json:"yesVotes"`
	NoVotes  int `json:"noVotes"`

	// Options is the ordered list of ballot choices.
	Options []string `json:"options"`

	// VotedBy records the user IDs that have already cast a ballot.
	VotedBy map[int64]bool `json:"-"`
}
