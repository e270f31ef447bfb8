package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/repomanager"
)

// SoundLinker resolves a sound name to a downloadable URL.
type SoundLinker interface {
	URL(ctx context.Context, name string) (string, error)
}

// DocumentService serves each user's profile document and phrases
// subcollection.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sounds      SoundLinker
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, sounds SoundLinker) *DocumentService {
	return &DocumentService{db: db, repomanager: m, sounds: sounds}
}

// GetProfile returns common.ErrorNotFound for a user without a saved profile.
func (s *DocumentService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).Get(ctx, userID)
}

func (s *DocumentService) SaveProfile(ctx context.Context, p *models.Profile) error {
	if err := s.repomanager.Profiles(s.db).Upsert(ctx, p); err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}
	return nil
}

func (s *DocumentService) ListPhrases(ctx context.Context, userID string) ([]models.Phrase, error) {
	return s.repomanager.Phrases(s.db).List(ctx, userID)
}

// PutPhrase creates or replaces a phrase keyed by its ID.
func (s *DocumentService) PutPhrase(ctx context.Context, p *models.Phrase) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: phrase id is empty", common.ErrorValidation)
	}
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("%w: phrase text is empty", common.ErrorValidation)
	}
	if err := s.repomanager.Phrases(s.db).Upsert(ctx, p); err != nil {
		return fmt.Errorf("error saving phrase: %w", err)
	}
	return nil
}

// DeletePhrase succeeds when the phrase is already gone.
func (s *DocumentService) DeletePhrase(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: phrase id is empty", common.ErrorValidation)
	}
	if err := s.repomanager.Phrases(s.db).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting phrase: %w", err)
	}
	return nil
}

func (s *DocumentService) SoundURL(ctx context.Context, name string) (string, error) {
	return s.sounds.URL(ctx, name)
}
