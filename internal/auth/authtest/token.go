// Package authtest mints access tokens for tests. Production tokens come
// from the auth service.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/imadgeboyega/kiekky-matching/internal/common/utils"
)

// Token signs a token of the given type for userID, valid for an hour
func Token(t testing.TB, secret string, userID int64, tokenType string) string {
	t.Helper()

	now := time.Now()
	claims := utils.AccessClaims{
		UserID: utils.TokenUserID(userID),
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// AccessToken is Token for an access token
func AccessToken(t testing.TB, secret string, userID int64) string {
	t.Helper()
	return Token(t, secret, userID, utils.TokenTypeAccess)
}
