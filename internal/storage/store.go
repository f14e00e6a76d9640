// Package storage provides abstractions for domain data storage.
package storage

import (
	"context"
	"errors"

	"github.com/stokvela/backend/internal/models"
)

// Sentinel errors returned by Store implementations. The handler layer
// maps these onto HTTP status codes.
var (
	// ErrNotFound is returned when a user, stokvel or vote ID is unknown.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUser is returned when registering an already-used phone number.
	ErrDuplicateUser = errors.New("user already exists with this phone number")

	// ErrInvalidInvite is returned when a join attempt supplies the wrong invite code.
	ErrInvalidInvite = errors.New("invalid invite code")

	// ErrStokvelFull is returned when joining a stokvel at its member cap.
	ErrStokvelFull = errors.New("stokvel is full")

	// ErrAlreadyMember is returned when the joining user is already a member.
	ErrAlreadyMember = errors.New("already a member of this stokvel")

	// ErrNotMember is returned when a non-member tries to contribute.
	ErrNotMember = errors.New("not a member of this stokvel")

	// ErrAlreadyVoted is returned when a user casts a second ballot on a vote.
	ErrAlreadyVoted = errors.New("already voted")
)

// Store defines the interface for domain storage operations.
// This abstraction allows swapping storage backends without changing
// the service layer, and makes the store mockable for tests.
type Store interface {
	// CreateUser persists a new user and assigns a sequential ID.
	// Returns ErrDuplicateUser if the phone number is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByPhone retrieves a user by phone number.
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// CreateStokvel persists a new stokvel, assigning a sequential ID and
	// a unique invite code. The creator must already be the sole member.
	CreateStokvel(ctx context.Context, stokvel *models.Stokvel) error

	// GetStokvel retrieves a stokvel by ID.
	GetStokvel(ctx context.Context, id int64) (*models.Stokvel, error)

	// ListStokvelsForUser returns the stokvels where the user is a member
	// or the creator.
	ListStokvelsForUser(ctx context.Context, userID int64) ([]models.Stokvel, error)

	// AddMember joins a user to a stokvel after checking the invite code,
	// the member cap and existing membership. Returns the updated stokvel.
	AddMember(ctx context.Context, stokvelID int64, member models.Member, inviteCode string) (*models.Stokvel, error)

	// RecordContribution increments the member's running total and the
	// stokvel balance by the same amount in one step. The caller must be
	// a member. Returns the updated stokvel.
	RecordContribution(ctx context.Context, stokvelID, userID int64, amount float64) (*models.Stokvel, error)

	// CreateVote persists a new vote and assigns a sequential ID.
	CreateVote(ctx context.Context, vote *models.Vote) error

	// ListVotesForUser returns the votes of the stokvels the user belongs to.
	ListVotesForUser(ctx context.Context, userID int64) ([]models.Vote, error)

	// CastVote records a ballot for the user. The yes bucket is chosen
	// when the option text contains "yes" or "approve". Returns the
	// updated vote, or ErrAlreadyVoted without changing any count when
	// the user has a recorded ballot.
	CastVote(ctx context.Context, voteID, userID int64, option string) (*models.Vote, error)

	// SaveProgress merges an education progress update for the user.
	SaveProgress(ctx context.Context, userID int64, update models.ProgressUpdate) error

	// GetProgress returns the user's education progress, zero-valued if
	// nothing has been recorded yet.
	GetProgress(ctx context.Context, userID int64) (*models.Progress, error)

	// Close releases any resources held by the store.
	Close() error
}
