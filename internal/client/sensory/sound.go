package sensory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

// SoundSource resolves a sound name to a playable URL.
type SoundSource interface {
	SoundURL(ctx context.Context, name string) (string, error)
}

// Player plays the audio behind a URL.
type Player interface {
	Play(ctx context.Context, name, url string) error
}

// PlayFavorite resolves the profile's favourite sound and hands it to player.
func PlayFavorite(ctx context.Context, src SoundSource, player Player, p models.Profile) error {
	name := p.FavoriteSound
	if name == "" {
		name = models.SoundCalm
	}
	url, err := src.SoundURL(ctx, name)
	if err != nil {
		return fmt.Errorf("resolve sound %q: %w", name, err)
	}
	return player.Play(ctx, name, url)
}
