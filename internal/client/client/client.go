package client

import (
	"context"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

// Session is what the server hands out at login. UserID is empty for a guest.
type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

func (s Session) Authenticated() bool {
	return s.UserID != "" && s.AccessToken != ""
}

type Client interface {
	Close() error

	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (Session, error)
	Reauthenticate(ctx context.Context, password string) (Session, error)
	DeleteAccount(ctx context.Context) error
	Ping(ctx context.Context) error

	// Session returns the tokens currently attached to calls.
	Session() Session
	SetSession(s Session)
	ClearSession()
	// OnSessionChange registers fn to be called whenever tokens are
	// rotated, including transparent refreshes.
	OnSessionChange(fn func(Session))

	GetProfile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, p models.Profile) error
	ListPhrases(ctx context.Context) ([]models.Phrase, error)
	PutPhrase(ctx context.Context, p models.Phrase) error
	DeletePhrase(ctx context.Context, id string) error
	SoundURL(ctx context.Context, name string) (string, error)
}
