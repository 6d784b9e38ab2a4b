// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renankelm10/cursera/internal/entitlement"
	"github.com/renankelm10/cursera/internal/identity"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v *stubVerifier) VerifyCredential(_ context.Context, _ string) (string, error) {
	return v.userID, v.err
}

type stubUsers struct {
	snapshots map[string]*identity.Snapshot
	err       error
}

func (u *stubUsers) GetSnapshot(_ context.Context, userID string) (*identity.Snapshot, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.snapshots[userID], nil
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"case insensitive scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"surrounding whitespace", "Bearer  abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentityFromDefaultsToAnonymous(t *testing.T) {
	id := IdentityFrom(context.Background())
	if id.IsAuthenticated() {
		t.Error("missing context value should yield anonymous")
	}
}

func withIdentity(r *http.Request, id entitlement.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(next)

	t.Run("anonymous rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("authenticated passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withIdentity(
			httptest.NewRequest(http.MethodGet, "/", nil),
			entitlement.Authenticated("u1"),
		)
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(next)

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withIdentity(
			httptest.NewRequest(http.MethodGet, "/", nil),
			entitlement.Authenticated("u1", entitlement.CapPaidContent),
		)
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := withIdentity(
			httptest.NewRequest(http.MethodGet, "/", nil),
			entitlement.Authenticated("a1", entitlement.CapAdmin),
		)
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestResolveIdentityInjectsIdentity(t *testing.T) {
	resolver := identity.NewResolver(
		&stubVerifier{userID: "u1"},
		&stubUsers{snapshots: map[string]*identity.Snapshot{
			"u1": {ID: "u1", HasPaidAccess: true},
		}},
	)

	var captured entitlement.Identity
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = IdentityFrom(r.Context())
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	ResolveIdentity(resolver)(next).ServeHTTP(w, r)

	if captured.UserID != "u1" {
		t.Errorf("user id = %q, want u1", captured.UserID)
	}
	if !captured.Has(entitlement.CapPaidContent) {
		t.Error("paid capability not derived")
	}
}

func TestResolveIdentityNoCredentialIsAnonymous(t *testing.T) {
	resolver := identity.NewResolver(&stubVerifier{}, &stubUsers{})

	var captured entitlement.Identity
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = IdentityFrom(r.Context())
	})

	w := httptest.NewRecorder()
	ResolveIdentity(resolver)(next).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured.IsAuthenticated() {
		t.Error("no credential should resolve to anonymous")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
