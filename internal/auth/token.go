package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWeakSecret   = errors.New("session secret must be at least 32 characters long")
)

const minSecretLength = 32

// SessionClaims binds a session id (the subject) to the signing secret.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenSigner turns session ids into tamper-evident cookie values. Tokens do
// not expire; sessions live as long as the process.
type TokenSigner struct {
	secretKey []byte
	now       func() time.Time
}

// NewTokenSigner creates a signer for secret.
func NewTokenSigner(secret string) (*TokenSigner, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	return &TokenSigner{secretKey: []byte(secret), now: time.Now}, nil
}

// Sign returns the cookie value for sessionID.
func (s *TokenSigner) Sign(sessionID string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify returns the session id carried by token, or ErrInvalidToken when the
// token is malformed or was not signed with this signer's secret.
func (s *TokenSigner) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
