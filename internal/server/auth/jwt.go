// Package auth issues and verifies the HS256 access tokens handed to clients.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user ID and the moment the user last presented a
// password. AuthTime survives token refreshes, which lets sensitive
// operations demand a recent login.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	AuthTime int64  `json:"auth_time"`
}

// AuthenticatedAt returns AuthTime as a time.Time.
func (c *Claims) AuthenticatedAt() time.Time {
	return time.Unix(c.AuthTime, 0)
}

func GenerateToken(userID string, authTime time.Time, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		AuthTime: authTime.Unix(),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry. An expired token yields
// common.ErrTokenExpired; anything else wrong yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
