package services

import (
	"context"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/localstore"
	"github.com/dmitrijs2005/senseandsay/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/senseandsay/internal/client/state"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
)

type Services struct {
	Auth     *AuthService
	Phrases  *PhraseService
	Profiles *ProfileService
}

// New wires the client services together: every login, logout and resume
// reloads the profile and reconciles the phrase list in parallel.
func New(c client.Client, meta metadata.Repository, st *state.AppState, logger logging.Logger) *Services {
	auth := NewAuthService(c, meta, st, logger)
	store := localstore.New(meta, logger)
	phrases := NewPhraseService(c, store, st, auth, logger)
	profiles := NewProfileService(c, st, auth, logger)

	auth.OnLogin(
		profiles.Load,
		func(ctx context.Context) error {
			phrases.Reconcile(ctx)
			return nil
		},
	)

	return &Services{Auth: auth, Phrases: phrases, Profiles: profiles}
}
