// Package auth holds the credential and token codecs: bcrypt password
// hashing, password policy checks and HS256 JWT issuance/verification.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/webedt/webedt/internal/server/models"
)

// TokenTTL is the lifetime of every issued access token.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the identity carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// IssueToken signs the identity with secretKey; the token expires after ttl.
func IssueToken(userID, email string, role models.Role, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	})

	return token.SignedString(secretKey)
}

// VerifyToken returns the claims of a correctly signed, unexpired token.
// Every failure collapses to (nil, false).
func VerifyToken(tokenString string, secretKey []byte) (*Claims, bool) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, false
	}

	return claims, true
}
