// AngelaMos | 2026
// resolver_test.go

package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/entitlement"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v stubVerifier) VerifyCredential(
	_ context.Context,
	_ string,
) (string, error) {
	return v.userID, v.err
}

type stubUsers struct {
	snap *Snapshot
	err  error
}

func (u stubUsers) GetSnapshot(
	_ context.Context,
	_ string,
) (*Snapshot, error) {
	return u.snap, u.err
}

func TestResolveMissingCredential(t *testing.T) {
	r := NewResolver(
		stubVerifier{err: core.ErrTokenInvalid},
		stubUsers{err: core.ErrNotFound},
	)

	id, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve(empty) unexpected error: %v", err)
	}
	if id.IsAuthenticated() {
		t.Error("Resolve(empty) returned authenticated identity")
	}
}

func TestResolveInvalidCredential(t *testing.T) {
	r := NewResolver(
		stubVerifier{err: core.ErrTokenInvalid},
		stubUsers{snap: &Snapshot{ID: "u1", IsAdmin: true}},
	)

	id, err := r.Resolve(context.Background(), "garbage")
	if err != nil {
		t.Fatalf("Resolve(invalid) unexpected error: %v", err)
	}
	if id.IsAuthenticated() {
		t.Error("invalid credential resolved to authenticated identity")
	}
}

func TestResolveExpiredCredential(t *testing.T) {
	r := NewResolver(
		stubVerifier{err: core.ErrTokenExpired},
		stubUsers{snap: &Snapshot{ID: "u1"}},
	)

	id, err := r.Resolve(context.Background(), "expired")
	if err != nil {
		t.Fatalf("Resolve(expired) unexpected error: %v", err)
	}
	if id.IsAuthenticated() {
		t.Error("expired credential resolved to authenticated identity")
	}
}

func TestResolveMissingUserRow(t *testing.T) {
	r := NewResolver(
		stubVerifier{userID: "u-gone"},
		stubUsers{err: core.ErrNotFound},
	)

	id, err := r.Resolve(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("Resolve(missing row) unexpected error: %v", err)
	}
	if id.IsAuthenticated() {
		t.Error("missing user row resolved to authenticated identity")
	}
}

func TestResolveStorageFailure(t *testing.T) {
	storageErr := errors.New("connection reset")
	r := NewResolver(
		stubVerifier{userID: "u1"},
		stubUsers{err: storageErr},
	)

	_, err := r.Resolve(context.Background(), "valid-token")
	if err == nil {
		t.Fatal("Resolve did not propagate storage failure")
	}
	if !errors.Is(err, storageErr) {
		t.Errorf("Resolve error = %v, want wrapped %v", err, storageErr)
	}
}

func TestResolveDerivesCapabilities(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		admin    bool
		paid     bool
	}{
		{"plain user", Snapshot{ID: "u1"}, false, false},
		{"paid user", Snapshot{ID: "u2", HasPaidAccess: true}, false, true},
		{"admin", Snapshot{ID: "u3", IsAdmin: true}, true, false},
		{"admin with paid", Snapshot{ID: "u4", IsAdmin: true, HasPaidAccess: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(
				stubVerifier{userID: tt.snap.ID},
				stubUsers{snap: &tt.snap},
			)

			id, err := r.Resolve(context.Background(), "token")
			if err != nil {
				t.Fatalf("Resolve unexpected error: %v", err)
			}
			if !id.IsAuthenticated() {
				t.Fatal("expected authenticated identity")
			}
			if id.UserID != tt.snap.ID {
				t.Errorf("UserID = %q, want %q", id.UserID, tt.snap.ID)
			}
			if got := id.Has(entitlement.CapAdmin); got != tt.admin {
				t.Errorf("Has(CapAdmin) = %v, want %v", got, tt.admin)
			}
			if got := id.Has(entitlement.CapPaidContent); got != tt.paid {
				t.Errorf("Has(CapPaidContent) = %v, want %v", got, tt.paid)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(entitlement.Authenticated("u1", entitlement.CapAdmin)); err != nil {
		t.Errorf("RequireAdmin(admin) = %v, want nil", err)
	}

	err := RequireAdmin(entitlement.Authenticated("u2", entitlement.CapPaidContent))
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("RequireAdmin(paid user) = %v, want ErrForbidden", err)
	}

	err = RequireAdmin(entitlement.Anonymous())
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("RequireAdmin(anonymous) = %v, want ErrUnauthorized", err)
	}
}
