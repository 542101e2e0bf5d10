package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LocalVerifier issues and verifies first-party HS256 session tokens for
// deployments running without Firebase.
type LocalVerifier struct {
	secret []byte
	ttl    time.Duration
}

func NewLocalVerifier(secret string, ttl time.Duration) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given subject.
func (v *LocalVerifier) Issue(uid, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(v.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *LocalVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	uid, ok := claims["sub"].(string)
	if !ok || uid == "" {
		return nil, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)

	return &Identity{UID: uid, Email: email}, nil
}
