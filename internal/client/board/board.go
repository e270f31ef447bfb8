// Package board builds a sentence out of tapped phrase cards and speaks it.
package board

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

// Speaker turns text into speech.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Board struct {
	mu       sync.Mutex
	speaker  Speaker
	selected []models.Phrase
}

func New(speaker Speaker) *Board {
	return &Board{speaker: speaker}
}

// Tap adds p to the sentence. In text-to-speech mode the phrase is also
// spoken right away.
func (b *Board) Tap(ctx context.Context, p models.Phrase, mode string) error {
	b.mu.Lock()
	b.selected = append(b.selected, p)
	b.mu.Unlock()

	if mode != models.ModeTextToSpeech {
		return nil
	}
	return b.speaker.Speak(ctx, p.Text)
}

// Sentence joins the selected phrases with spaces.
func (b *Board) Sentence() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	parts := make([]string, len(b.selected))
	for i, p := range b.selected {
		parts[i] = p.Text
	}
	return strings.Join(parts, " ")
}

// Speak says the whole sentence. It does nothing outside text-to-speech mode
// or when nothing is selected.
func (b *Board) Speak(ctx context.Context, mode string) error {
	if mode != models.ModeTextToSpeech {
		return nil
	}
	s := b.Sentence()
	if s == "" {
		return nil
	}
	return b.speaker.Speak(ctx, s)
}

func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = nil
}
