// Package localstore keeps the device's phrase list in the client database.
// The list survives restarts and logouts and is the starting point of every
// reconciliation with the account.
package localstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/senseandsay/internal/client/docs"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
)

type Store struct {
	mu     sync.Mutex
	repo   metadata.Repository
	logger logging.Logger
}

func New(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("module", "localstore")}
}

// Load returns the persisted list. A missing, unreadable or corrupt blob
// yields an empty list.
func (s *Store) Load(ctx context.Context) []models.Phrase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save replaces the persisted list. Write errors are logged and dropped.
func (s *Store) Save(ctx context.Context, phrases []models.Phrase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, phrases)
}

// Add appends p unless a phrase with the same text (ignoring case) is
// already stored.
func (s *Store) Add(ctx context.Context, p models.Phrase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx)
	if models.ContainsText(list, p.Text) {
		return
	}
	s.save(ctx, append(list, p))
}

// Delete removes every phrase with the given id.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx)
	kept := list[:0]
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return
	}
	s.save(ctx, kept)
}

// Update replaces the persisted list with fn(current) in one step and returns
// the stored result.
func (s *Store) Update(ctx context.Context, fn func([]models.Phrase) []models.Phrase) []models.Phrase {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.load(ctx))
	s.save(ctx, next)
	return next
}

func (s *Store) load(ctx context.Context) []models.Phrase {
	data, err := s.repo.Get(ctx, common.LocalPhrasesKey)
	if err != nil {
		s.logger.Warn(ctx, "failed to read local phrases", "error", err)
		return []models.Phrase{}
	}
	if len(data) == 0 {
		return []models.Phrase{}
	}
	list, generatedIDs, err := docs.DecodeLocal(data)
	if err != nil {
		s.logger.Warn(ctx, "discarding undecodable local phrases", "error", err)
		return []models.Phrase{}
	}
	if generatedIDs {
		s.save(ctx, list)
	}
	return list
}

func (s *Store) save(ctx context.Context, phrases []models.Phrase) {
	data, err := docs.EncodeLocal(phrases)
	if err != nil {
		s.logger.Error(ctx, "failed to encode local phrases", "error", err)
		return
	}
	if err := s.repo.Set(ctx, common.LocalPhrasesKey, data); err != nil {
		s.logger.Error(ctx, "failed to write local phrases", "error", err)
	}
}
