package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/senseandsay/internal/async"
	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/localstore"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/client/state"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
	"github.com/google/uuid"
)

type AddResult int

const (
	// AddBlank means the text was empty after trimming; nothing happened.
	AddBlank AddResult = iota
	// AddDuplicate means the list already holds the text; nothing happened.
	AddDuplicate
	Added
)

func (r AddResult) String() string {
	switch r {
	case AddBlank:
		return "blank"
	case AddDuplicate:
		return "duplicate"
	case Added:
		return "added"
	default:
		return "unknown"
	}
}

// Done is the value type of futures that only report success.
type Done = struct{}

// PhraseService owns the active phrase list. Every change is applied to
// memory and the Local Store first; the account copy is updated in the
// background and its failures are only logged.
type PhraseService struct {
	client   client.Client
	store    *localstore.Store
	state    *state.AppState
	identity Identity
	logger   logging.Logger
	tracker  async.Tracker

	// mu pairs every change of the active list with the matching Local Store
	// write, so the two never drift apart.
	mu sync.Mutex

	newID      func() string
	colorIndex func() int
}

func NewPhraseService(c client.Client, store *localstore.Store, st *state.AppState, id Identity, logger logging.Logger) *PhraseService {
	return &PhraseService{
		client:     c,
		store:      store,
		state:      st,
		identity:   id,
		logger:     logger.With("module", "phrases"),
		newID:      uuid.NewString,
		colorIndex: func() int { return common.RandIntn(models.PaletteSize) },
	}
}

// Phrases returns a snapshot of the active list.
func (s *PhraseService) Phrases() []models.Phrase {
	return s.state.Phrases()
}

// AddPhrase adds text as a new phrase. The returned future tracks the remote
// write and is already resolved when nothing is sent.
func (s *PhraseService) AddPhrase(ctx context.Context, text string) (AddResult, models.Phrase, *async.Future[Done]) {
	text = strings.TrimSpace(text)
	if text == "" {
		return AddBlank, models.Phrase{}, async.Resolved(Done{}, nil)
	}

	p := models.Phrase{
		ID:         s.newID(),
		Text:       text,
		ColorIndex: s.colorIndex(),
		IconName:   models.DefaultIconName,
	}

	s.mu.Lock()
	added := s.state.UpdatePhrases(func(list []models.Phrase) ([]models.Phrase, bool) {
		if models.ContainsText(list, text) {
			return list, false
		}
		return append(list, p), true
	})
	if added {
		s.store.Add(ctx, p)
	}
	s.mu.Unlock()

	if !added {
		return AddDuplicate, models.Phrase{}, async.Resolved(Done{}, nil)
	}

	if !s.identity.IsAuthenticated() {
		return Added, p, async.Resolved(Done{}, nil)
	}

	bg := context.WithoutCancel(ctx)
	put := async.Go(bg, func(ctx context.Context) (Done, error) {
		if err := s.client.PutPhrase(ctx, p); err != nil {
			s.logger.Warn(ctx, "failed to save phrase remotely", "id", p.ID, "error", err)
			return Done{}, err
		}
		return Done{}, nil
	})
	synced := async.Then(bg, put, func(ctx context.Context, _ Done) (Done, error) {
		s.Reconcile(ctx)
		return Done{}, nil
	})
	return Added, p, async.Track(&s.tracker, synced)
}

// DeletePhrase removes p by id from memory and the Local Store, then from
// the account when logged in.
func (s *PhraseService) DeletePhrase(ctx context.Context, p models.Phrase) *async.Future[Done] {
	s.mu.Lock()
	s.state.UpdatePhrases(func(list []models.Phrase) ([]models.Phrase, bool) {
		n := len(list)
		list = slices.DeleteFunc(list, func(q models.Phrase) bool { return q.ID == p.ID })
		return list, len(list) != n
	})
	s.store.Delete(ctx, p.ID)
	s.mu.Unlock()

	if !s.identity.IsAuthenticated() {
		return async.Resolved(Done{}, nil)
	}

	f := async.Go(context.WithoutCancel(ctx), func(ctx context.Context) (Done, error) {
		if err := s.client.DeletePhrase(ctx, p.ID); err != nil {
			s.logger.Warn(ctx, "failed to delete phrase remotely", "id", p.ID, "error", err)
			return Done{}, err
		}
		return Done{}, nil
	})
	return async.Track(&s.tracker, f)
}

// Reconcile rebuilds the active list from the Local Store merged with the
// account list. When logged out or the fetch fails the Local Store alone is
// shown and nothing is written.
func (s *PhraseService) Reconcile(ctx context.Context) []models.Phrase {
	if !s.identity.IsAuthenticated() {
		return s.showLocal(ctx)
	}

	cloud, err := s.client.ListPhrases(ctx)
	if err != nil {
		level := s.logger.Warn
		if errors.Is(err, client.ErrUnavailable) {
			level = s.logger.Info
		}
		level(ctx, "using local phrases, fetch failed", "error", err)
		return s.showLocal(ctx)
	}

	s.mu.Lock()
	merged := s.store.Update(ctx, func(local []models.Phrase) []models.Phrase {
		return Merge(local, cloud)
	})
	s.state.SetPhrases(merged)
	s.mu.Unlock()

	s.logger.Debug(ctx, "phrases reconciled", "cloud", len(cloud), "total", len(merged))
	return merged
}

// ShowLocal makes the Local Store the active list without contacting the
// server.
func (s *PhraseService) ShowLocal(ctx context.Context) {
	s.showLocal(ctx)
}

func (s *PhraseService) showLocal(ctx context.Context) []models.Phrase {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := s.store.Load(ctx)
	s.state.SetPhrases(local)
	return local
}

// Wait blocks until background remote writes have finished or ctx is done.
func (s *PhraseService) Wait(ctx context.Context) error {
	return s.tracker.Wait(ctx)
}
