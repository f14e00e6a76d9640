package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stokvela/backend/internal/currency"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// ErrForbidden is returned when a non-member requests stokvel details.
var ErrForbidden = errors.New("access denied")

// StokvelView is a stokvel annotated for the requesting user.
type StokvelView struct {
	models.Stokvel

	// MyContribution is the requesting user's running total.
	MyContribution float64 `json:"myContribution"`

	// Progress is round(balance / targetAmount * 100).
	Progress int `json:"progress"`
}

// CreateStokvelInput carries the creation request.
type CreateStokvelInput struct {
	Name                 string
	Type                 string
	Description          string
	ContributionAmount   float64
	TargetAmount         float64
	Frequency            string
	MaxMembers           int
	EndDate              time.Time
	PenaltyRate          float64
	AllowEarlyWithdrawal bool
}

// ContributionResult is returned after a contribution is recorded.
type ContributionResult struct {
	Transaction    models.Transaction `json:"transaction"`
	NewBalance     float64            `json:"newBalance"`
	MyContribution float64            `json:"myContribution"`
}

// StokvelService implements the stokvel operations.
type StokvelService struct {
	store storage.Store
}

// NewStokvelService creates a new StokvelService with the given storage
// backend.
func NewStokvelService(store storage.Store) *StokvelService {
	return &StokvelService{store: store}
}

func annotate(s models.Stokvel, userID int64) StokvelView {
	view := StokvelView{Stokvel: s, Progress: currency.Percentage(s.Balance, s.TargetAmount)}
	if m := s.MemberByID(userID); m != nil {
		view.MyContribution = m.Contributions
	}
	return view
}

// List returns the user's stokvels annotated with their own contribution
// total and the pool progress.
func (s *StokvelService) List(ctx context.Context, userID int64) ([]StokvelView, error) {
	stokvels, err := s.store.ListStokvelsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]StokvelView, len(stokvels))
	for i, stokvel := range stokvels {
		views[i] = annotate(stokvel, userID)
	}

	slog.Info("stokvels listed", "user_id", userID, "count", len(views))
	return views, nil
}

// Create builds a new stokvel with the creator as the sole member and
// hands it to the store for ID and invite-code assignment. A missing
// target amount defaults to contributionAmount * maxMembers * 12; a
// missing end date defaults to one year out.
func (s *StokvelService) Create(ctx context.Context, creator *models.User, in CreateStokvelInput) (*models.Stokvel, error) {
	now := time.Now()

	targetAmount := in.TargetAmount
	if targetAmount == 0 {
		targetAmount = in.ContributionAmount * float64(in.MaxMembers) * 12
	}

	endDate := in.EndDate
	if endDate.IsZero() {
		endDate = now.AddDate(1, 0, 0)
	}

	penaltyRate := in.PenaltyRate
	if penaltyRate == 0 {
		penaltyRate = 0.05
	}

	stokvel := &models.Stokvel{
		Name:               in.Name,
		Type:               in.Type,
		Description:        in.Description,
		Balance:            0,
		TargetAmount:       targetAmount,
		ContributionAmount: in.ContributionAmount,
		Frequency:          in.Frequency,
		Members: []models.Member{{
			ID:          creator.ID,
			Name:        creator.FirstName + " " + creator.LastName,
			PhoneNumber: creator.PhoneNumber,
			Status:      models.StatusActive,
			JoinedAt:    now,
		}},
		CreatedBy: creator.ID,
		CreatedAt: now,
		EndDate:   endDate,
		Status:    models.StatusActive,
		Rules: models.Rules{
			MaxMembers:           in.MaxMembers,
			MinContribution:      in.ContributionAmount,
			PenaltyRate:          penaltyRate,
			AllowEarlyWithdrawal: in.AllowEarlyWithdrawal,
		},
	}

	if err := s.store.CreateStokvel(ctx, stokvel); err != nil {
		slog.Error("create stokvel failed", "user_id", creator.ID, "error", err)
		return nil, err
	}

	slog.Info("stokvel created", "stokvel_id", stokvel.ID, "user_id", creator.ID, "invite_code", stokvel.InviteCode)
	return stokvel, nil
}

// Get returns an annotated stokvel. Non-members get ErrForbidden.
func (s *StokvelService) Get(ctx context.Context, stokvelID, userID int64) (*StokvelView, error) {
	stokvel, err := s.store.GetStokvel(ctx, stokvelID)
	if err != nil {
		return nil, err
	}
	if !stokvel.HasMember(userID) {
		return nil, ErrForbidden
	}

	view := annotate(*stokvel, userID)
	return &view, nil
}

// Join adds the user to a stokvel gated by its invite code.
func (s *StokvelService) Join(ctx context.Context, stokvelID int64, user *models.User, inviteCode string) (*models.Stokvel, error) {
	member := models.Member{
		ID:          user.ID,
		Name:        user.FirstName + " " + user.LastName,
		PhoneNumber: user.PhoneNumber,
		Status:      models.StatusActive,
	}

	stokvel, err := s.store.AddMember(ctx, stokvelID, member, inviteCode)
	if err != nil {
		slog.Warn("join stokvel failed", "stokvel_id", stokvelID, "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("member joined stokvel", "stokvel_id", stokvelID, "user_id", user.ID, "members", len(stokvel.Members))
	return stokvel, nil
}

// Contribute records a contribution for the caller and returns a
// synthesized transaction record for client display.
func (s *StokvelService) Contribute(ctx context.Context, stokvelID, userID int64, amount float64, paymentReference string) (*ContributionResult, error) {
	stokvel, err := s.store.RecordContribution(ctx, stokvelID, userID, amount)
	if err != nil {
		slog.Warn("contribution failed", "stokvel_id", stokvelID, "user_id", userID, "error", err)
		return nil, err
	}

	member := stokvel.MemberByID(userID)

	slog.Info("contribution recorded",
		"stokvel_id", stokvelID,
		"user_id", userID,
		"amount", amount,
		"new_balance", stokvel.Balance,
	)

	return &ContributionResult{
		Transaction: models.Transaction{
			ID:               uuid.NewString(),
			StokvelID:        stokvelID,
			UserID:           userID,
			Type:             "contribution",
			Amount:           amount,
			PaymentReference: paymentReference,
			Timestamp:        time.Now(),
			Status:           "completed",
		},
		NewBalance:     stokvel.Balance,
		MyContribution: member.Contributions,
	}, nil
}
