package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/glencullen/golfpoi/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenTTL bounds API tokens; session cookies live longer because the
// browser flow has no refresh step.
const (
	TokenTTL   = time.Hour
	SessionTTL = 24 * time.Hour
)

type Claims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"id"`
	Email  string `json:"email,omitempty"`
}

// IssueToken signs a short-lived API credential for the user.
func IssueToken(user *models.User, secret []byte) (string, error) {
	return sign(user.ID, user.Email, secret, TokenTTL)
}

// IssueSessionToken signs the cookie-borne credential. It carries only the
// user id.
func IssueSessionToken(userID uint, secret []byte) (string, error) {
	return sign(userID, "", secret, SessionTTL)
}

func sign(userID uint, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken validates signature and expiry and returns the embedded
// identity. Any verification failure, malformed input included, comes back
// as ErrInvalidToken so callers fail closed.
func VerifyToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
