// Package sensory runs the calming tools: a paced breathing exercise and an
// ambient sound player.
package sensory

import (
	"context"
	"time"
)

type Phase string

const (
	Inhale Phase = "Inhale"
	Hold   Phase = "Hold"
	Exhale Phase = "Exhale"
)

// Step is one phase of a breathing cycle.
type Step struct {
	Phase    Phase
	Duration time.Duration
}

// DefaultPattern is breathe in for 4s, hold for 4s, breathe out for 6s.
var DefaultPattern = []Step{
	{Phase: Inhale, Duration: 4 * time.Second},
	{Phase: Hold, Duration: 4 * time.Second},
	{Phase: Exhale, Duration: 6 * time.Second},
}

// Event announces the start of a phase. Cycle counts from 1.
type Event struct {
	Cycle int
	Step
}

type Breathing struct {
	Pattern []Step
	Cycles  int

	sleep func(ctx context.Context, d time.Duration) error
}

func NewBreathing(cycles int) *Breathing {
	return &Breathing{Pattern: DefaultPattern, Cycles: cycles, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run emits an event at the start of every phase and closes the channel when
// all cycles are done or ctx is cancelled.
func (b *Breathing) Run(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for cycle := 1; cycle <= b.Cycles; cycle++ {
			for _, step := range b.Pattern {
				select {
				case out <- Event{Cycle: cycle, Step: step}:
				case <-ctx.Done():
					return
				}
				if err := b.sleep(ctx, step.Duration); err != nil {
					return
				}
			}
		}
	}()
	return out
}

// Total is how long a full run takes.
func (b *Breathing) Total() time.Duration {
	var d time.Duration
	for _, s := range b.Pattern {
		d += s.Duration
	}
	return d * time.Duration(b.Cycles)
}
