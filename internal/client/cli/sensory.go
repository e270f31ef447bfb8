package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/senseandsay/internal/client/sensory"
)

const defaultBreathingCycles = 3

// newBreathing is a test seam.
var newBreathing = sensory.NewBreathing

// Breathe runs the paced breathing exercise, printing each phase as it
// starts. Ctrl+C stops it early.
func (a *App) Breathe(ctx context.Context, args []string) error {
	cycles := defaultBreathingCycles
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("%w: breathe [cycles], cycles must be a positive number", errUsage)
		}
		cycles = n
	}

	b := newBreathing(cycles)
	fmt.Fprintf(a.out, "Breathing for %s. Follow along.\n", b.Total())
	for ev := range b.Run(ctx) {
		fmt.Fprintf(a.out, "[%d/%d] %s for %s\n", ev.Cycle, cycles, ev.Phase, ev.Duration)
	}
	fmt.Fprintln(a.out, "Well done.")
	return nil
}

// Sound plays the favourite ambient sound.
func (a *App) Sound(ctx context.Context) error {
	return sensory.PlayFavorite(ctx, a.api, a.player, a.services.Profiles.Profile())
}
