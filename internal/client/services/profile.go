package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/client/state"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
)

// ProfileService loads and saves the account's preferences. Guests always
// see the defaults.
type ProfileService struct {
	client   client.Client
	state    *state.AppState
	identity Identity
	logger   logging.Logger
}

func NewProfileService(c client.Client, st *state.AppState, id Identity, logger logging.Logger) *ProfileService {
	return &ProfileService{client: c, state: st, identity: id, logger: logger.With("module", "profile")}
}

func (s *ProfileService) Profile() models.Profile {
	return s.state.Profile()
}

// Load fetches the profile and publishes it. A missing profile publishes the
// defaults; other fetch errors leave the current profile in place.
func (s *ProfileService) Load(ctx context.Context) error {
	if !s.identity.IsAuthenticated() {
		s.state.SetProfile(models.DefaultProfile())
		return nil
	}

	p, err := s.client.GetProfile(ctx)
	if errors.Is(err, client.ErrNotFound) {
		p, err = models.DefaultProfile(), nil
	}
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	s.state.SetProfile(p)
	return nil
}

// Save validates p and writes the whole record.
func (s *ProfileService) Save(ctx context.Context, p models.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	if !s.identity.IsAuthenticated() {
		return client.ErrNotAuthenticated
	}
	if p.Goals == nil {
		p.Goals = []string{}
	}

	if err := s.client.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	s.state.SetProfile(p)
	s.logger.Info(ctx, "profile saved", "user_id", s.identity.UserID())
	return nil
}

// Reset publishes the default profile without touching the server.
func (s *ProfileService) Reset() {
	s.state.SetProfile(models.DefaultProfile())
}
