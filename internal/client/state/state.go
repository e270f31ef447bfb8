// Package state holds what the client is currently showing: the profile,
// the active phrase list and the connection mode. Observers subscribe to
// changes instead of polling.
package state

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

type Mode string

const (
	ModeGuest   Mode = "guest"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Field names which part of the state changed.
type Field int

const (
	FieldProfile Field = iota
	FieldPhrases
	FieldMode
)

func (f Field) String() string {
	switch f {
	case FieldProfile:
		return "profile"
	case FieldPhrases:
		return "phrases"
	case FieldMode:
		return "mode"
	default:
		return "unknown"
	}
}

type Change struct {
	Field Field
}

type AppState struct {
	mu       sync.RWMutex
	profile  models.Profile
	phrases  []models.Phrase
	mode     Mode
	nextID   int
	watchers map[int]func(Change)
}

func New() *AppState {
	return &AppState{
		profile:  models.DefaultProfile(),
		phrases:  []models.Phrase{},
		mode:     ModeGuest,
		watchers: make(map[int]func(Change)),
	}
}

// Subscribe registers fn for every change and returns a function that
// removes it. fn runs on the goroutine that made the change and must not
// block.
func (s *AppState) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

func (s *AppState) notify(c Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

func (s *AppState) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	p.Goals = slices.Clone(p.Goals)
	return p
}

func (s *AppState) SetProfile(p models.Profile) {
	p.Goals = slices.Clone(p.Goals)
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	s.notify(Change{Field: FieldProfile})
}

// Phrases returns a copy of the active list.
func (s *AppState) Phrases() []models.Phrase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.phrases)
}

func (s *AppState) SetPhrases(list []models.Phrase) {
	list = slices.Clone(list)
	if list == nil {
		list = []models.Phrase{}
	}
	s.mu.Lock()
	s.phrases = list
	s.mu.Unlock()
	s.notify(Change{Field: FieldPhrases})
}

// UpdatePhrases applies fn to the active list under the state lock. fn
// returns the new list and whether anything changed.
func (s *AppState) UpdatePhrases(fn func([]models.Phrase) ([]models.Phrase, bool)) bool {
	s.mu.Lock()
	next, changed := fn(slices.Clone(s.phrases))
	if changed {
		s.phrases = next
	}
	s.mu.Unlock()

	if changed {
		s.notify(Change{Field: FieldPhrases})
	}
	return changed
}

func (s *AppState) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode notifies only when the mode actually changes.
func (s *AppState) SetMode(m Mode) {
	s.mu.Lock()
	changed := s.mode != m
	s.mode = m
	s.mu.Unlock()

	if changed {
		s.notify(Change{Field: FieldMode})
	}
}
