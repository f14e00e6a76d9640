package memory

import (
	"context"
	"time"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// CreateUser assigns the next sequential ID and stores the user.
func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByPhone[user.PhoneNumber]; exists {
		return storage.ErrDuplicateUser
	}

	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	s.users[user.ID] = &stored
	s.usersByPhone[user.PhoneNumber] = user.ID
	return nil
}

// GetUserByPhone retrieves a user by phone number.
func (s *MemoryStore) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByPhone[phoneNumber]
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := *s.users[id]
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *MemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := *stored
	return &user, nil
}
