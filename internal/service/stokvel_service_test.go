package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
	"github.com/stokvela/backend/internal/storage/memory"
)

func seedUser(t *testing.T, store storage.Store, phone, first, last string) *models.User {
	t.Helper()
	u := &models.User{PhoneNumber: phone, FirstName: first, LastName: last, TrustScore: 100, IsActive: true}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func TestStokvelCreateDefaults(t *testing.T) {
	store := memory.New()
	svc := NewStokvelService(store)
	creator := seedUser(t, store, "+27831234567", "Thandi", "Mokoena")

	got, err := svc.Create(context.Background(), creator, CreateStokvelInput{
		Name:               "December Groceries",
		Type:               models.TypeSavings,
		ContributionAmount: 500,
		Frequency:          models.FrequencyMonthly,
		MaxMembers:         10,
	})
	require.NoError(t, err)

	// targetAmount defaults to contribution * maxMembers * 12.
	assert.Equal(t, float64(60000), got.TargetAmount)
	assert.Equal(t, 0.05, got.Rules.PenaltyRate)
	assert.Equal(t, float64(500), got.Rules.MinContribution)
	assert.False(t, got.EndDate.IsZero())

	require.Len(t, got.Members, 1)
	assert.Equal(t, creator.ID, got.Members[0].ID)
	assert.Equal(t, "Thandi Mokoena", got.Members[0].Name)
	assert.Equal(t, creator.ID, got.CreatedBy)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Zero(t, got.Balance)
	assert.NotEmpty(t, got.InviteCode)
}

func TestStokvelCreateExplicitTarget(t *testing.T) {
	store := memory.New()
	svc := NewStokvelService(store)
	creator := seedUser(t, store, "+27831234567", "Thandi", "Mokoena")

	got, err := svc.Create(context.Background(), creator, CreateStokvelInput{
		Name:               "House Deposit",
		Type:               models.TypeSavings,
		ContributionAmount: 1000,
		TargetAmount:       250000,
		Frequency:          models.FrequencyMonthly,
		MaxMembers:         5,
		EndDate:            time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(250000), got.TargetAmount)
	assert.Equal(t, 2027, got.EndDate.Year())
}

func TestStokvelGetEnforcesMembership(t *testing.T) {
	store := memory.New()
	svc := NewStokvelService(store)
	creator := seedUser(t, store, "+27831234567", "Thandi", "Mokoena")
	outsider := seedUser(t, store, "+27839999999", "Sipho", "Ndlovu")

	created, err := svc.Create(context.Background(), creator, CreateStokvelInput{
		Name: "Family", Type: models.TypeSavings, ContributionAmount: 500,
		Frequency: models.FrequencyMonthly, MaxMembers: 5,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	view, err := svc.Get(context.Background(), created.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Zero(t, view.Progress)
}

func TestStokvelJoinAndContribute(t *testing.T) {
	store := memory.New()
	svc := NewStokvelService(store)
	ctx := context.Background()
	creator := seedUser(t, store, "+27831234567", "Thandi", "Mokoena")
	joiner := seedUser(t, store, "+27839999999", "Sipho", "Ndlovu")

	created, err := svc.Create(ctx, creator, CreateStokvelInput{
		Name: "Family", Type: models.TypeSavings, ContributionAmount: 500,
		TargetAmount: 10000, Frequency: models.FrequencyMonthly, MaxMembers: 5,
	})
	require.NoError(t, err)

	joined, err := svc.Join(ctx, created.ID, joiner, created.InviteCode)
	require.NoError(t, err)
	assert.Len(t, joined.Members, 2)

	_, err = svc.Join(ctx, created.ID, joiner, created.InviteCode)
	assert.ErrorIs(t, err, storage.ErrAlreadyMember)

	res, err := svc.Contribute(ctx, created.ID, joiner.ID, 500, "momo-ref-1")
	require.NoError(t, err)
	assert.Equal(t, float64(500), res.NewBalance)
	assert.Equal(t, float64(500), res.MyContribution)
	assert.Equal(t, "contribution", res.Transaction.Type)
	assert.Equal(t, "momo-ref-1", res.Transaction.PaymentReference)
	assert.NotEmpty(t, res.Transaction.ID)

	// Annotated view reflects the new totals.
	view, err := svc.Get(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(500), view.MyContribution)
	assert.Equal(t, 5, view.Progress)
}

func TestStokvelListAnnotations(t *testing.T) {
	store := memory.New()
	svc := NewStokvelService(store)
	ctx := context.Background()
	creator := seedUser(t, store, "+27831234567", "Thandi", "Mokoena")

	created, err := svc.Create(ctx, creator, CreateStokvelInput{
		Name: "Family", Type: models.TypeSavings, ContributionAmount: 500,
		TargetAmount: 1000, Frequency: models.FrequencyMonthly, MaxMembers: 5,
	})
	require.NoError(t, err)
	_, err = svc.Contribute(ctx, created.ID, creator.ID, 750, "")
	require.NoError(t, err)

	views, err := svc.List(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, float64(750), views[0].MyContribution)
	assert.Equal(t, 75, views[0].Progress)
}
