// AngelaMos | 2026
// resolver.go

// Package identity turns an inbound credential into exactly one identity
// state: authenticated with capabilities, or anonymous. A bad credential is
// never an error here; anonymous callers simply see previews only.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/entitlement"
)

// TokenVerifier checks a bearer credential's signature, expiry, and
// revocation state and yields the user id it is bound to.
type TokenVerifier interface {
	VerifyCredential(ctx context.Context, credential string) (string, error)
}

// Snapshot is the slice of a user row the resolver needs. Flags are read
// fresh per request so entitlement reflects the latest persisted state, not
// whatever was true when the credential was issued.
type Snapshot struct {
	ID            string
	IsAdmin       bool
	HasPaidAccess bool
}

type UserProvider interface {
	GetSnapshot(ctx context.Context, userID string) (*Snapshot, error)
}

type Resolver struct {
	verifier TokenVerifier
	users    UserProvider
}

func NewResolver(verifier TokenVerifier, users UserProvider) *Resolver {
	return &Resolver{verifier: verifier, users: users}
}

// Resolve maps a credential to an identity. Missing, malformed, expired, or
// revoked credentials resolve to the anonymous identity, as does a verified
// credential whose user row no longer exists. The only error returned is an
// upstream storage failure, which callers surface as a generic internal
// error.
func (r *Resolver) Resolve(
	ctx context.Context,
	credential string,
) (entitlement.Identity, error) {
	if credential == "" {
		return entitlement.Anonymous(), nil
	}

	userID, err := r.verifier.VerifyCredential(ctx, credential)
	if err != nil {
		return entitlement.Anonymous(), nil
	}

	snap, err := r.users.GetSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return entitlement.Anonymous(), nil
		}
		return entitlement.Anonymous(), fmt.Errorf("resolve identity: %w", err)
	}

	return FromSnapshot(snap), nil
}

// FromSnapshot derives the capability set from the user row's flags. New
// roles extend here without touching call sites.
func FromSnapshot(snap *Snapshot) entitlement.Identity {
	if snap == nil {
		return entitlement.Anonymous()
	}

	caps := make([]entitlement.Capability, 0, 2)
	if snap.IsAdmin {
		caps = append(caps, entitlement.CapAdmin)
	}
	if snap.HasPaidAccess {
		caps = append(caps, entitlement.CapPaidContent)
	}

	return entitlement.Authenticated(snap.ID, caps...)
}

// RequireAdmin gates admin-only surfaces. Denial is a forbidden outcome for
// authenticated non-admins and an unauthorized one for anonymous callers,
// never a crash.
func RequireAdmin(id entitlement.Identity) error {
	if !id.IsAuthenticated() {
		return fmt.Errorf("require admin: %w", core.ErrUnauthorized)
	}
	if !id.Has(entitlement.CapAdmin) {
		return fmt.Errorf("require admin: %w", core.ErrForbidden)
	}
	return nil
}
