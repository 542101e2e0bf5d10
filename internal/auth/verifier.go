// Package auth holds token verification and the authorization gate used by
// the profile-sync endpoints. Verification outcomes are values, not panics or
// ad-hoc error strings: callers branch on sentinel errors and deny reasons.
package auth

import (
	"context"
	"errors"
)

// Identity is the verified subject of a bearer token.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier turns a raw bearer token into a verified Identity.
// Implementations: FirebaseVerifier, LocalVerifier, VerifierChain.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

var (
	// ErrTokenExpired marks a token that verified structurally but is past
	// its expiry. Distinguished so the API can tell the client to refresh.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers every other verification failure: bad
	// signature, malformed blob, wrong audience, unknown issuer.
	ErrTokenInvalid = errors.New("invalid token")
)

// VerifierChain tries each verifier in order and returns the first verified
// identity. An expired result wins over an invalid one so the caller sees the
// most actionable reason.
type VerifierChain []TokenVerifier

func (c VerifierChain) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	var lastErr error
	for _, v := range c {
		id, err := v.Verify(ctx, rawToken)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, ErrTokenExpired) {
			lastErr = err
			continue
		}
		if lastErr == nil {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = ErrTokenInvalid
	}
	return nil, lastErr
}
