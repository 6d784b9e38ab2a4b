// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableRedis returns a client pointed at a closed port, so every
// redis_rate call errors and the limiter falls back to its local bucket.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterEnforcesLimitViaFallback(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(), RateLimitConfig{
		Limit:    PerMinute(1, 1),
		FailOpen: true,
	})
	handler := rl.Handler(okHandler())

	newRequest := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:40000"
		return r
	}

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newRequest())
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newRequest())
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(second.Body).Decode(&body); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	if body.Success {
		t.Error("429 body success = true, want false")
	}
	if body.Error.Code != "RATE_LIMITED" {
		t.Errorf("429 body error code = %q, want RATE_LIMITED", body.Error.Code)
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(), RateLimitConfig{
		Limit:    PerMinute(1, 1),
		FailOpen: true,
	})
	handler := rl.Handler(okHandler())

	for i, addr := range []string{"10.0.0.1:40000", "10.0.0.2:40000"} {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Errorf("request %d from %s status = %d, want 200", i, addr, rec.Code)
		}
	}
}

func TestRateLimiterBypass(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(), RateLimitConfig{
		Limit:      PerMinute(1, 1),
		FailOpen:   true,
		BypassFunc: func(*http.Request) bool { return true },
	})
	handler := rl.Handler(okHandler())

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:40000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Fatalf("bypassed request %d status = %d, want 200", i, rec.Code)
		}
	}
}

func TestPerMinuteAndPerSecond(t *testing.T) {
	m := PerMinute(10, 5)
	if m.Rate != 10 || m.Burst != 5 || m.Period != time.Minute {
		t.Errorf("PerMinute(10, 5) = %+v", m)
	}

	s := PerSecond(3, 1)
	if s.Rate != 3 || s.Burst != 1 || s.Period != time.Second {
		t.Errorf("PerSecond(3, 1) = %+v", s)
	}
}

func TestKeyByIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.1:40000",
			want:       "ratelimit:ip:10.0.0.1",
		},
		{
			name:       "forwarded-for uses last hop",
			remoteAddr: "10.0.0.1:40000",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"},
			want:       "ratelimit:ip:5.6.7.8",
		},
		{
			name:       "real-ip",
			remoteAddr: "10.0.0.1:40000",
			headers:    map[string]string{"X-Real-IP": "9.9.9.9"},
			want:       "ratelimit:ip:9.9.9.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := KeyByIP(r); got != tt.want {
				t.Errorf("KeyByIP = %q, want %q", got, tt.want)
			}
		})
	}
}
