package services

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/client/client"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

var errBoom = errors.New("boom")

type memMeta struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemMeta() *memMeta {
	return &memMeta{values: map[string][]byte{}}
}

func (m *memMeta) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memMeta) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
	return nil
}

func (m *memMeta) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memMeta) List(context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values), nil
}

// fakeClient is an in-memory account. Password "secret" logs in as "u1".
type fakeClient struct {
	mu       sync.Mutex
	session  client.Session
	onChange func(client.Session)

	cloud   []models.Phrase
	profile *models.Profile

	puts    []models.Phrase
	deletes []string

	putErr, deleteErr, listErr, pingErr, deleteAccountErr, profileErr error
	// listDelay holds ListPhrases back while still honouring ctx.
	listDelay time.Duration
	// putGate, when set, blocks PutPhrase until closed.
	putGate chan struct{}
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Register(_ context.Context, email, _ string) error {
	if email == "taken@example.com" {
		return client.ErrAlreadyExists
	}
	return nil
}

func (f *fakeClient) Login(_ context.Context, _, password string) (client.Session, error) {
	if password != "secret" {
		return client.Session{}, client.ErrUnauthorized
	}
	s := client.Session{UserID: "u1", AccessToken: "a1", RefreshToken: "r1"}
	f.SetSession(s)
	return s, nil
}

func (f *fakeClient) Reauthenticate(_ context.Context, password string) (client.Session, error) {
	if password != "secret" {
		return client.Session{}, client.ErrUnauthorized
	}
	f.mu.Lock()
	f.deleteAccountErr = nil
	f.mu.Unlock()
	s := client.Session{UserID: "u1", AccessToken: "a2", RefreshToken: "r2"}
	f.SetSession(s)
	return s, nil
}

func (f *fakeClient) DeleteAccount(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteAccountErr
}

func (f *fakeClient) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeClient) Session() client.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeClient) SetSession(s client.Session) {
	f.mu.Lock()
	f.session = s
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

func (f *fakeClient) ClearSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = client.Session{}
}

func (f *fakeClient) OnSessionChange(fn func(client.Session)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

func (f *fakeClient) GetProfile(context.Context) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return models.Profile{}, f.profileErr
	}
	if f.profile == nil {
		return models.Profile{}, client.ErrNotFound
	}
	return *f.profile, nil
}

func (f *fakeClient) SaveProfile(_ context.Context, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = &p
	return nil
}

func (f *fakeClient) ListPhrases(ctx context.Context) ([]models.Phrase, error) {
	if f.listDelay > 0 {
		select {
		case <-time.After(f.listDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.cloud), nil
}

func (f *fakeClient) PutPhrase(ctx context.Context, p models.Phrase) error {
	f.mu.Lock()
	gate := f.putGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, p)
	if f.putErr != nil {
		return f.putErr
	}
	f.cloud = append(f.cloud, p)
	return nil
}

func (f *fakeClient) DeletePhrase(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.cloud = slices.DeleteFunc(f.cloud, func(p models.Phrase) bool { return p.ID == id })
	return nil
}

func (f *fakeClient) SoundURL(_ context.Context, name string) (string, error) {
	return "https://example.com/" + name, nil
}

func (f *fakeClient) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}
