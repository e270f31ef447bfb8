// Package services contains server-side business logic. This file implements
// UserService: registration, login, token refresh and account deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/dbx"
	"github.com/dmitrijs2005/senseandsay/internal/server/auth"
	"github.com/dmitrijs2005/senseandsay/internal/server/config"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	bcryptCost = bcrypt.DefaultCost
	now        = time.Now
)

// TokenPair bundles a short-lived access token and a long-lived refresh token
// issued to UserID.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	reauthWindow                 time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		reauthWindow:                 cfg.ReauthWindow,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Emails are matched case-insensitively.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and issues a token pair whose auth time is now.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user.ID, now(), s.db)
}

// Reauthenticate confirms the password of an already signed-in user and
// issues a pair with a fresh auth time.
func (s *UserService) Reauthenticate(ctx context.Context, userID, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user.ID, now(), s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair carrying the original auth time.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, token.AuthTime, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// DeleteAccount removes the user and all their documents. The caller must
// have presented a password within the reauth window.
func (s *UserService) DeleteAccount(ctx context.Context, userID string, authTime time.Time) error {
	if now().Sub(authTime) > s.reauthWindow {
		return common.ErrReauthRequired
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Phrases(tx).DeleteAll(ctx, userID); err != nil {
			return fmt.Errorf("error deleting phrases: %w", err)
		}
		if err := s.repomanager.Profiles(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("error deleting profile: %w", err)
		}
		if err := s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting refresh tokens: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, authTime time.Time, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, authTime, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refresh, authTime, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}
