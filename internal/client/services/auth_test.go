package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/client/state"
	"github.com/dmitrijs2005/senseandsay/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLogin_PersistsSessionAndGoesOnline(t *testing.T) {
	fc := &fakeClient{}
	s, st, meta := newServices(t, fc)

	require.NoError(t, s.Auth.Login(context.Background(), " a@example.com ", "secret"))

	assert.True(t, s.Auth.IsAuthenticated())
	assert.Equal(t, "u1", s.Auth.UserID())
	assert.Equal(t, state.ModeOnline, st.Mode())
	assert.Equal(t, []byte("u1"), meta.values[keyUserID])
	assert.Equal(t, []byte("a1"), meta.values[keyAccessToken])
	assert.Equal(t, []byte("r1"), meta.values[keyRefreshToken])
}

func TestLogin_ProfileFailureDoesNotStopPhraseMerge(t *testing.T) {
	fc := &fakeClient{
		profileErr: client.ErrUnavailable,
		listDelay:  50 * time.Millisecond,
		cloud:      []models.Phrase{ph("c1", "Cloud")},
	}
	s, st, _ := newServices(t, fc)

	require.NoError(t, s.Auth.Login(context.Background(), "a@example.com", "secret"))

	assert.Equal(t, []models.Phrase{ph("c1", "Cloud")}, st.Phrases())
	assert.Equal(t, models.DefaultProfile(), st.Profile())
}

func TestLogin_WrongPassword(t *testing.T) {
	s, st, _ := newServices(t, &fakeClient{})

	err := s.Auth.Login(context.Background(), "a@example.com", "nope")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, s.Auth.IsAuthenticated())
	assert.Equal(t, state.ModeGuest, st.Mode())
}

func TestRegister_SavesInitialProfile(t *testing.T) {
	fc := &fakeClient{}
	s, st, _ := newServices(t, fc)

	require.NoError(t, s.Auth.Register(context.Background(), " Sam ", "a@example.com", "secret"))

	require.NotNil(t, fc.profile)
	assert.Equal(t, "Sam", fc.profile.Name)
	assert.Equal(t, "Sam", st.Profile().Name)

	err := s.Auth.Register(context.Background(), "x", "taken@example.com", "secret")
	assert.ErrorIs(t, err, client.ErrAlreadyExists)
}

func TestResume_RestoresSavedSession(t *testing.T) {
	ctx := context.Background()
	meta := newMemMeta()
	require.NoError(t, meta.Set(ctx, keyUserID, []byte("u1")))
	require.NoError(t, meta.Set(ctx, keyAccessToken, []byte("a1")))
	require.NoError(t, meta.Set(ctx, keyRefreshToken, []byte("r1")))

	fc := &fakeClient{cloud: []models.Phrase{ph("c1", "From cloud")}}
	st := state.New()
	s := New(fc, meta, st, logging.Nop())

	ok, err := s.Auth.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, client.Session{UserID: "u1", AccessToken: "a1", RefreshToken: "r1"}, fc.Session())
	assert.Equal(t, state.ModeOnline, st.Mode())
	assert.Equal(t, []models.Phrase{ph("c1", "From cloud")}, st.Phrases())
}

func TestResume_OfflineFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	meta := newMemMeta()
	require.NoError(t, meta.Set(ctx, keyUserID, []byte("u1")))
	require.NoError(t, meta.Set(ctx, keyAccessToken, []byte("a1")))

	fc := &fakeClient{pingErr: client.ErrUnavailable, listErr: client.ErrUnavailable}
	st := state.New()
	s := New(fc, meta, st, logging.Nop())
	s.Phrases.store.Save(ctx, []models.Phrase{ph("l1", "Local")})

	ok, err := s.Auth.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, state.ModeOffline, st.Mode())
	assert.Equal(t, []models.Phrase{ph("l1", "Local")}, st.Phrases())
}

func TestResume_NoSession(t *testing.T) {
	s, st, _ := newServices(t, &fakeClient{})

	ok, err := s.Auth.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, state.ModeGuest, st.Mode())
}

func TestLogout_KeepsLocalStore(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{cloud: []models.Phrase{ph("c1", "Merged in")}}
	s, st, meta := newServices(t, fc)

	s.Phrases.store.Save(ctx, []models.Phrase{ph("l1", "Mine")})
	login(t, s)
	require.Len(t, st.Phrases(), 2)

	require.NoError(t, s.Auth.Logout(ctx))

	assert.False(t, s.Auth.IsAuthenticated())
	assert.Equal(t, state.ModeGuest, st.Mode())
	assert.NotContains(t, meta.values, keyAccessToken)
	assert.Equal(t, []models.Phrase{ph("l1", "Mine"), ph("c1", "Merged in")}, st.Phrases())
	assert.Equal(t, models.DefaultProfile(), st.Profile())
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{deleteAccountErr: client.ErrReauthRequired}
	s, st, _ := newServices(t, fc)

	assert.ErrorIs(t, s.Auth.DeleteAccount(ctx), client.ErrNotAuthenticated)

	login(t, s)
	assert.ErrorIs(t, s.Auth.DeleteAccount(ctx), client.ErrReauthRequired)
	assert.True(t, s.Auth.IsAuthenticated())

	assert.ErrorIs(t, s.Auth.ReauthenticateAndDelete(ctx, "wrong"), client.ErrUnauthorized)
	require.NoError(t, s.Auth.ReauthenticateAndDelete(ctx, "secret"))

	assert.False(t, s.Auth.IsAuthenticated())
	assert.Equal(t, state.ModeGuest, st.Mode())
}

func TestWatchOnline_TogglesMode(t *testing.T) {
	defer goleak.VerifyNone(t)

	fc := &fakeClient{}
	s, st, _ := newServices(t, fc)
	login(t, s)

	fc.mu.Lock()
	fc.pingErr = client.ErrUnavailable
	fc.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Auth.WatchOnline(ctx, 5*time.Millisecond)
	}()

	require.Eventually(t, func() bool { return st.Mode() == state.ModeOffline }, time.Second, 5*time.Millisecond)

	fc.mu.Lock()
	fc.pingErr = nil
	fc.mu.Unlock()

	require.Eventually(t, func() bool { return st.Mode() == state.ModeOnline }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
