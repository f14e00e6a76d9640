package memory

import (
	"context"
	"sort"
	"time"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// copyStokvel returns a deep copy so callers never share member slices
// with the stored record.
func copyStokvel(s *models.Stokvel) *models.Stokvel {
	out := *s
	out.Members = make([]models.Member, len(s.Members))
	copy(out.Members, s.Members)
	return &out
}

// CreateStokvel assigns the next sequential ID and a unique invite code,
// then stores the stokvel. The caller supplies the creator as the sole
// member with zero contributions and a zero balance.
func (s *MemoryStore) CreateStokvel(ctx context.Context, stokvel *models.Stokvel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextStokvelID++
	stokvel.ID = s.nextStokvelID
	stokvel.InviteCode = s.newInviteCode()
	if stokvel.CreatedAt.IsZero() {
		stokvel.CreatedAt = time.Now()
	}

	s.stokvels[stokvel.ID] = copyStokvel(stokvel)
	s.inviteCodes[stokvel.InviteCode] = stokvel.ID
	return nil
}

// GetStokvel retrieves a stokvel by ID.
func (s *MemoryStore) GetStokvel(ctx context.Context, id int64) (*models.Stokvel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.stokvels[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyStokvel(stored), nil
}

// ListStokvelsForUser returns the stokvels where the user is a member or
// the creator, ordered by ID.
func (s *MemoryStore) ListStokvelsForUser(ctx context.Context, userID int64) ([]models.Stokvel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Stokvel
	for _, stored := range s.stokvels {
		if stored.HasMember(userID) {
			out = append(out, *copyStokvel(stored))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AddMember joins a user to a stokvel. The invite code, member cap and
// existing membership are all checked under the write lock so concurrent
// joins cannot overshoot Rules.MaxMembers.
func (s *MemoryStore) AddMember(ctx context.Context, stokvelID int64, member models.Member, inviteCode string) (*models.Stokvel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.stokvels[stokvelID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if stored.InviteCode != inviteCode {
		return nil, storage.ErrInvalidInvite
	}
	if len(stored.Members) >= stored.Rules.MaxMembers {
		return nil, storage.ErrStokvelFull
	}
	if stored.MemberByID(member.ID) != nil {
		return nil, storage.ErrAlreadyMember
	}

	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	member.Contributions = 0
	stored.Members = append(stored.Members, member)
	return copyStokvel(stored), nil
}

// RecordContribution increments the member's running total and the
// stokvel balance by the same amount in one step under the write lock.
func (s *MemoryStore) RecordContribution(ctx context.Context, stokvelID, userID int64, amount float64) (*models.Stokvel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.stokvels[stokvelID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	member := stored.MemberByID(userID)
	if member == nil {
		return nil, storage.ErrNotMember
	}

	member.Contributions += amount
	stored.Balance += amount
	return copyStokvel(stored), nil
}
