package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

func copyVote(v *models.Vote) *models.Vote {
	out := *v
	out.Options = make([]string, len(v.Options))
	copy(out.Options, v.Options)
	out.VotedBy = make(map[int64]bool, len(v.VotedBy))
	for id := range v.VotedBy {
		out.VotedBy[id] = true
	}
	return &out
}

// CreateVote assigns the next sequential ID and stores the vote.
func (s *MemoryStore) CreateVote(ctx context.Context, vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextVoteID++
	vote.ID = s.nextVoteID
	if vote.VotedBy == nil {
		vote.VotedBy = make(map[int64]bool)
	}
	s.votes[vote.ID] = copyVote(vote)
	return nil
}

// ListVotesForUser returns the votes of stokvels the user belongs to,
// ordered by ID.
func (s *MemoryStore) ListVotesForUser(ctx context.Context, userID int64) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Vote
	for _, stored := range s.votes {
		stokvel, ok := s.stokvels[stored.StokvelID]
		if !ok || !stokvel.HasMember(userID) {
			continue
		}
		out = append(out, *copyVote(stored))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// isYesOption reports whether the chosen option text counts as approval.
func isYesOption(option string) bool {
	lower := strings.ToLower(option)
	return strings.Contains(lower, "yes") || strings.Contains(lower, "approve")
}

// CastVote records a ballot for the user. A second ballot from the same
// user returns ErrAlreadyVoted and leaves every count unchanged.
func (s *MemoryStore) CastVote(ctx context.Context, voteID, userID int64, option string) (*models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.votes[voteID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if stored.VotedBy[userID] {
		return nil, storage.ErrAlreadyVoted
	}

	if isYesOption(option) {
		stored.YesVotes++
	} else {
		stored.NoVotes++
	}
	stored.TotalVotes++
	stored.VotedBy[userID] = true
	return copyVote(stored), nil
}
