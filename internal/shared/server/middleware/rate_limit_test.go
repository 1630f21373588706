package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	t.Parallel()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	if ok, _ := limiter.Allow("u", rule); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := limiter.Allow("u", rule); !ok {
		t.Fatal("second request should pass within burst")
	}
	ok, retryAfter := limiter.Allow("u", rule)
	if ok {
		t.Fatal("third request should be limited")
	}
	if retryAfter <= 0 {
		t.Fatalf("retryAfter = %v, want > 0", retryAfter)
	}

	current = current.Add(time.Second)
	if ok, _ := limiter.Allow("u", rule); !ok {
		t.Fatal("request should pass after refill")
	}
}

func TestRateLimiter_KeysIsolated(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil)
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatal("a should pass")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatal("b should not be affected by a's bucket")
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	r.Use(RateLimit(RateLimitRule{Rate: 0.001, Burst: 1}, NewRateLimiter(nil)))
	r.POST("/parse", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/parse", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/parse", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("Retry-After header missing")
	}
}

func TestRateLimit_ZeroRuleDisabled(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(RateLimitRule{}, NewRateLimiter(nil)))
	r.POST("/parse", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/parse", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
}
