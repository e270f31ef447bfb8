package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/senseandsay/internal/client/state"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Metadata keys of the saved session.
const (
	keyUserID       = "session_user_id"
	keyAccessToken  = "session_access_token"
	keyRefreshToken = "session_refresh_token"
)

// LoginHook runs after every successful login or session resume.
type LoginHook func(ctx context.Context) error

// AuthService owns the session. It keeps the tokens in the metadata table so
// a restarted client is still logged in, and it drives the online/offline
// mode of the app state.
type AuthService struct {
	client client.Client
	meta   metadata.Repository
	state  *state.AppState
	logger logging.Logger

	mu    sync.RWMutex
	hooks []LoginHook
}

var _ Identity = (*AuthService)(nil)

func NewAuthService(c client.Client, meta metadata.Repository, st *state.AppState, logger logging.Logger) *AuthService {
	a := &AuthService{client: c, meta: meta, state: st, logger: logger.With("module", "auth")}
	c.OnSessionChange(a.persistSession)
	return a
}

// OnLogin registers hooks that run concurrently after login.
func (a *AuthService) OnLogin(hooks ...LoginHook) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hooks...)
}

func (a *AuthService) IsAuthenticated() bool {
	return a.client.Session().Authenticated()
}

func (a *AuthService) UserID() string {
	return a.client.Session().UserID
}

func (a *AuthService) persistSession(s client.Session) {
	ctx := context.Background()
	for k, v := range map[string]string{
		keyUserID:       s.UserID,
		keyAccessToken:  s.AccessToken,
		keyRefreshToken: s.RefreshToken,
	} {
		if err := a.meta.Set(ctx, k, []byte(v)); err != nil {
			a.logger.Error(ctx, "failed to save session", "key", k, "error", err)
			return
		}
	}
}

// Resume restores a saved session. It reports whether one was found; the
// login hooks run either way so the app state reflects what is stored.
func (a *AuthService) Resume(ctx context.Context) (bool, error) {
	values, err := a.meta.List(ctx)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}

	s := client.Session{
		UserID:       string(values[keyUserID]),
		AccessToken:  string(values[keyAccessToken]),
		RefreshToken: string(values[keyRefreshToken]),
	}
	if !s.Authenticated() {
		a.state.SetMode(state.ModeGuest)
		a.refresh(ctx)
		return false, nil
	}

	a.client.SetSession(s)
	a.updateMode(ctx)
	a.refresh(ctx)
	return true, nil
}

// Register creates the account, logs in and stores an initial profile with
// the given name.
func (a *AuthService) Register(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)
	if err := a.client.Register(ctx, email, password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := a.login(ctx, email, password); err != nil {
		return err
	}

	p := models.DefaultProfile()
	p.Name = strings.TrimSpace(name)
	if err := a.client.SaveProfile(ctx, p); err != nil {
		a.logger.Warn(ctx, "failed to save initial profile", "error", err)
	}

	a.refresh(ctx)
	return nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) error {
	if err := a.login(ctx, strings.TrimSpace(email), password); err != nil {
		return err
	}
	a.refresh(ctx)
	return nil
}

func (a *AuthService) login(ctx context.Context, email, password string) error {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.state.SetMode(state.ModeOnline)
	a.logger.Info(ctx, "logged in", "user_id", s.UserID)
	return nil
}

// runHooks runs the login hooks in parallel and returns the first error. A
// failing hook does not cancel the others.
func (a *AuthService) runHooks(ctx context.Context) error {
	a.mu.RLock()
	hooks := append([]LoginHook(nil), a.hooks...)
	a.mu.RUnlock()

	var g errgroup.Group
	for _, h := range hooks {
		g.Go(func() error { return h(ctx) })
	}
	return g.Wait()
}

// refresh runs the hooks and logs their failure. A failed fetch never undoes
// a login.
func (a *AuthService) refresh(ctx context.Context) {
	if err := a.runHooks(ctx); err != nil {
		a.logger.Warn(ctx, "refresh after login failed", "error", err)
	}
}

// Logout forgets the session. The Local Store is kept, so the board still
// shows the phrases merged so far.
func (a *AuthService) Logout(ctx context.Context) error {
	a.client.ClearSession()
	if err := a.meta.Delete(ctx, keyUserID, keyAccessToken, keyRefreshToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.state.SetMode(state.ModeGuest)
	a.refresh(ctx)
	return nil
}

// DeleteAccount removes the account and logs out. It returns
// client.ErrReauthRequired when the server wants a fresh login first.
func (a *AuthService) DeleteAccount(ctx context.Context) error {
	if !a.IsAuthenticated() {
		return client.ErrNotAuthenticated
	}
	if err := a.client.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	a.logger.Info(ctx, "account deleted")
	return a.Logout(ctx)
}

// ReauthenticateAndDelete confirms the password and retries the deletion.
func (a *AuthService) ReauthenticateAndDelete(ctx context.Context, password string) error {
	if _, err := a.client.Reauthenticate(ctx, password); err != nil {
		return fmt.Errorf("reauthenticate: %w", err)
	}
	return a.DeleteAccount(ctx)
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *AuthService) updateMode(ctx context.Context) {
	if !a.IsAuthenticated() {
		a.state.SetMode(state.ModeGuest)
		return
	}
	if err := a.client.Ping(ctx); err != nil {
		a.state.SetMode(state.ModeOffline)
		return
	}
	a.state.SetMode(state.ModeOnline)
}

// WatchOnline pings the server every interval until ctx is done and flips
// the mode between online and offline. Coming back online triggers the
// login hooks so the board catches up with the account.
func (a *AuthService) WatchOnline(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			before := a.state.Mode()
			a.updateMode(ctx)
			if before == state.ModeOffline && a.state.Mode() == state.ModeOnline {
				if err := a.runHooks(ctx); err != nil && !errors.Is(err, context.Canceled) {
					a.logger.Warn(ctx, "refresh after reconnect failed", "error", err)
				}
			}
		}
	}
}
