// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/renankelm10/cursera/internal/config"
	"github.com/renankelm10/cursera/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	manager, err := NewJWTManager(config.SessionConfig{
		PrivateKeyPath: privPath,
		PublicKeyPath:  pubPath,
		TokenExpire:    expire,
		Issuer:         "cursera",
		Audience:       "cursera-api",
	})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	return manager
}

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	issued, err := manager.CreateSessionToken("user-123")
	if err != nil {
		t.Fatalf("CreateSessionToken: %v", err)
	}
	if issued.TokenID == "" {
		t.Fatal("issued token has no id")
	}

	claims, err := manager.VerifySessionToken(issued.Token)
	if err != nil {
		t.Fatalf("VerifySessionToken: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("user id = %q", claims.UserID)
	}
	if claims.TokenID != issued.TokenID {
		t.Errorf("token id = %q, want %q", claims.TokenID, issued.TokenID)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	issued, err := manager.CreateSessionToken("user-123")
	if err != nil {
		t.Fatalf("CreateSessionToken: %v", err)
	}

	_, err = manager.VerifySessionToken(issued.Token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := manager.VerifySessionToken(token); !errors.Is(err, core.ErrTokenInvalid) {
			t.Errorf("token %q: err = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestVerifyTokenFromOtherKey(t *testing.T) {
	managerA := newTestManager(t, time.Hour)
	managerB := newTestManager(t, time.Hour)

	issued, err := managerA.CreateSessionToken("user-123")
	if err != nil {
		t.Fatalf("CreateSessionToken: %v", err)
	}

	if _, err := managerB.VerifySessionToken(issued.Token); !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("cross-key verify err = %v, want ErrTokenInvalid", err)
	}
}
