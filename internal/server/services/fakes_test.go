package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/dbx"
	"github.com/dmitrijs2005/senseandsay/internal/server/config"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
	phrasesrepo "github.com/dmitrijs2005/senseandsay/internal/server/repositories/phrases"
	profilesrepo "github.com/dmitrijs2005/senseandsay/internal/server/repositories/profiles"
	refreshtokensrepo "github.com/dmitrijs2005/senseandsay/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/senseandsay/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func init() {
	bcryptCost = bcrypt.MinCost
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		ReauthWindow:                 5 * time.Minute,
	}
}

type fakeUsersRepo struct {
	byID      map[string]*models.User
	createErr error
	getErr    error
	deleteErr error
	seq       int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.seq++
	u.ID = "u" + strings.Repeat("1", f.seq)
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byID, id)
	return nil
}

type fakeRefreshRepo struct {
	tokens    map[string]*models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, authTime time.Time, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, AuthTime: authTime, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteByUser(_ context.Context, userID string) error {
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

type fakeProfilesRepo struct {
	byUser    map[string]*models.Profile
	upsertErr error
}

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{byUser: map[string]*models.Profile{}}
}

func (f *fakeProfilesRepo) Get(_ context.Context, userID string) (*models.Profile, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfilesRepo) Upsert(_ context.Context, p *models.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func (f *fakeProfilesRepo) Delete(_ context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

type fakePhrasesRepo struct {
	rows      []models.Phrase
	deleteErr error
}

func (f *fakePhrasesRepo) List(_ context.Context, userID string) ([]models.Phrase, error) {
	out := make([]models.Phrase, 0)
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePhrasesRepo) Upsert(_ context.Context, p *models.Phrase) error {
	for i := range f.rows {
		if f.rows[i].UserID == p.UserID && f.rows[i].ID == p.ID {
			p.CreatedAt = f.rows[i].CreatedAt
			f.rows[i] = *p
			return nil
		}
	}
	p.CreatedAt = time.Now()
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePhrasesRepo) Delete(_ context.Context, userID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.rows[:0]
	for _, p := range f.rows {
		if !(p.UserID == userID && p.ID == id) {
			kept = append(kept, p)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakePhrasesRepo) DeleteAll(_ context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.rows[:0]
	for _, p := range f.rows {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	f.rows = kept
	return nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	pr *fakeProfilesRepo
	ph *fakePhrasesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  newFakeUsersRepo(),
		r:  newFakeRefreshRepo(),
		pr: newFakeProfilesRepo(),
		ph: &fakePhrasesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profilesrepo.Repository           { return m.pr }
func (m *fakeRepoManager) Phrases(dbx.DBTX) phrasesrepo.Repository             { return m.ph }
