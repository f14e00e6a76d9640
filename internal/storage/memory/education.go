package memory

import (
	"context"
	"slices"

	"github.com/stokvela/backend/internal/models"
)

// SaveProgress merges a progress update into the user's record. A
// completed module is added to the completed set once and advances the
// current module pointer; scores accumulate.
func (s *MemoryStore) SaveProgress(ctx context.Context, userID int64, update models.ProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[userID]
	if !ok {
		p = &models.Progress{}
		s.progress[userID] = p
	}

	if update.Completed && !slices.Contains(p.CompletedModules, update.ModuleID) {
		p.CompletedModules = append(p.CompletedModules, update.ModuleID)
		p.CurrentModule = update.ModuleID + 1
	}
	p.TotalScore += update.Score
	return nil
}

// GetProgress returns the user's progress, zero-valued when nothing has
// been recorded.
func (s *MemoryStore) GetProgress(ctx context.Context, userID int64) (*models.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.progress[userID]
	if !ok {
		return &models.Progress{}, nil
	}
	p := *stored
	p.CompletedModules = slices.Clone(stored.CompletedModules)
	p.Certificates = slices.Clone(stored.Certificates)
	return &p, nil
}
