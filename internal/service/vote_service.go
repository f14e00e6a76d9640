package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// VoteService implements the group voting operations.
type VoteService struct {
	store storage.Store
}

// NewVoteService creates a new VoteService with the given storage backend.
func NewVoteService(store storage.Store) *VoteService {
	return &VoteService{store: store}
}

// CreateVoteInput carries a vote creation request.
type CreateVoteInput struct {
	Title         string
	StokvelID     int64
	Description   string
	Type          string
	EndDate       time.Time
	RequiredVotes int
	Options       []string
}

// Create opens a vote on a stokvel the caller belongs to.
func (s *VoteService) Create(ctx context.Context, userID int64, in CreateVoteInput) (*models.Vote, error) {
	stokvel, err := s.store.GetStokvel(ctx, in.StokvelID)
	if err != nil {
		return nil, err
	}
	if !stokvel.HasMember(userID) {
		return nil, ErrForbidden
	}

	voteType := in.Type
	if voteType == "" {
		voteType = models.VoteGeneral
	}
	requiredVotes := in.RequiredVotes
	if requiredVotes == 0 {
		requiredVotes = len(stokvel.Members)
	}

	vote := &models.Vote{
		Title:         in.Title,
		StokvelID:     stokvel.ID,
		Stokvel:       stokvel.Name,
		Description:   in.Description,
		Type:          voteType,
		Status:        models.VoteActive,
		EndDate:       in.EndDate,
		RequiredVotes: requiredVotes,
		Options:       in.Options,
	}

	if err := s.store.CreateVote(ctx, vote); err != nil {
		slog.Error("create vote failed", "stokvel_id", in.StokvelID, "error", err)
		return nil, err
	}

	slog.Info("vote created", "vote_id", vote.ID, "stokvel_id", stokvel.ID, "user_id", userID)
	return vote, nil
}

// List returns the votes visible to the user, each with HasVoted set for
// that user.
func (s *VoteService) List(ctx context.Context, userID int64) ([]models.Vote, error) {
	votes, err := s.store.ListVotesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range votes {
		votes[i].HasVoted = votes[i].VotedBy[userID]
	}

	slog.Info("votes listed", "user_id", userID, "count", len(votes))
	return votes, nil
}

// Cast records the user's ballot. Repeat ballots surface
// storage.ErrAlreadyVoted and leave the counts untouched.
func (s *VoteService) Cast(ctx context.Context, voteID, userID int64, option string) (*models.Vote, error) {
	vote, err := s.store.CastVote(ctx, voteID, userID, option)
	if err != nil {
		slog.Warn("cast vote failed", "vote_id", voteID, "user_id", userID, "error", err)
		return nil, err
	}

	vote.HasVoted = true
	slog.Info("vote cast", "vote_id", voteID, "user_id", userID, "total_votes", vote.TotalVotes)
	return vote, nil
}
