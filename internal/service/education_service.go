package service

import (
	"context"
	"log/slog"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// Catalog maps a language code to its module list. Languages without a
// translated catalog fall back to English.
type Catalog map[string][]models.Module

// EducationService serves the financial literacy catalog and tracks
// per-user progress.
type EducationService struct {
	store   storage.Store
	catalog Catalog
}

// NewEducationService creates an EducationService. A nil catalog uses
// the built-in content.
func NewEducationService(store storage.Store, catalog Catalog) *EducationService {
	if catalog == nil {
		catalog = defaultCatalog
	}
	return &EducationService{store: store, catalog: catalog}
}

func (s *EducationService) modules(language string) []models.Module {
	if modules, ok := s.catalog[language]; ok {
		return modules
	}
	return s.catalog["en"]
}

// Modules returns the catalog for the language, falling back to English.
func (s *EducationService) Modules(language string) []models.Module {
	return s.modules(language)
}

// Module returns one module by ID in the given language, or nil.
func (s *EducationService) Module(id int64, language string) *models.Module {
	for _, m := range s.modules(language) {
		if m.ID == id {
			return &m
		}
	}
	return nil
}

// SaveProgress records a progress update for the user.
func (s *EducationService) SaveProgress(ctx context.Context, userID int64, update models.ProgressUpdate) error {
	if err := s.store.SaveProgress(ctx, userID, update); err != nil {
		return err
	}
	slog.Info("progress saved", "user_id", userID, "module_id", update.ModuleID, "completed", update.Completed)
	return nil
}

// Progress returns the user's progress.
func (s *EducationService) Progress(ctx context.Context, userID int64) (*models.Progress, error) {
	return s.store.GetProgress(ctx, userID)
}
