package auth

import (
	"context"
	"errors"
)

// DenyReason enumerates why an authorization decision failed. Reasons are
// stable strings so they can appear in logs and diagnostics unchanged.
type DenyReason string

const (
	DenyMissingToken DenyReason = "missing_token"
	DenyExpiredToken DenyReason = "expired_token"
	DenyInvalidToken DenyReason = "invalid_token"
	DenyUIDMismatch  DenyReason = "uid_mismatch"
)

// Decision is the outcome of a gate check. When Allowed is true, Identity is
// the verified caller; otherwise Reason says what went wrong.
type Decision struct {
	Allowed  bool
	Identity *Identity
	Reason   DenyReason
}

func allow(id *Identity) Decision {
	return Decision{Allowed: true, Identity: id}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Gate decides whether a bearer token may act on a target account.
type Gate struct {
	verifier TokenVerifier
}

func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Identify verifies the token and returns the caller's identity with no
// target check. Used when the target is derived from the token itself.
func (g *Gate) Identify(ctx context.Context, rawToken string) Decision {
	if rawToken == "" {
		return deny(DenyMissingToken)
	}

	id, err := g.verifier.Verify(ctx, rawToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return deny(DenyExpiredToken)
		}
		return deny(DenyInvalidToken)
	}
	return allow(id)
}

// Authorize verifies the token and allows only when the verified subject is
// exactly targetUID. A user may act on their own account, never another's.
func (g *Gate) Authorize(ctx context.Context, rawToken, targetUID string) Decision {
	d := g.Identify(ctx, rawToken)
	if !d.Allowed {
		return d
	}
	if d.Identity.UID != targetUID {
		return deny(DenyUIDMismatch)
	}
	return d
}
