package pca

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims bind a launch token to one player. The token is minted at
// game launch and presented back by the provider on every callback.
type SessionClaims struct {
	PlayID   string `json:"play_id"`
	WebID    string `json:"web_id"`
	Currency string `json:"currency"`
	jwt.RegisteredClaims
}

func MintToken(secret []byte, playID, webID, currency string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		PlayID:   playID,
		WebID:    webID,
		Currency: currency,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func VerifyToken(secret []byte, token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.PlayID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
