package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func limitedRouter(t *testing.T, perMin int, trusted []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := r.SetTrustedProxies(trusted); err != nil {
		t.Fatal(err)
	}
	r.Use(RateLimitMiddleware(perMin, zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func call(r *gin.Engine, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	r := limitedRouter(t, 2, nil)

	if call(r, "1.1.1.1:1000", "") != http.StatusNoContent || call(r, "1.1.1.1:1001", "") != http.StatusNoContent {
		t.Fatal("burst requests should pass")
	}
	if code := call(r, "1.1.1.1:1002", ""); code != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", code)
	}
	if code := call(r, "2.2.2.2:1000", ""); code != http.StatusNoContent {
		t.Errorf("other client = %d, want 204", code)
	}
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	r := limitedRouter(t, 1, nil)

	if code := call(r, "3.3.3.3:1000", "7.7.7.1"); code != http.StatusNoContent {
		t.Fatalf("first request = %d, want 204", code)
	}
	if code := call(r, "3.3.3.3:1000", "7.7.7.2"); code != http.StatusTooManyRequests {
		t.Errorf("request with a fresh X-Forwarded-For = %d, want 429", code)
	}
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	r := limitedRouter(t, 1, []string{"10.0.0.0/8"})

	if code := call(r, "10.0.0.5:1000", "4.4.4.4"); code != http.StatusNoContent {
		t.Fatalf("first client = %d, want 204", code)
	}
	if code := call(r, "10.0.0.5:1000", "5.5.5.5"); code != http.StatusNoContent {
		t.Errorf("second client behind proxy = %d, want 204", code)
	}
	if code := call(r, "10.0.0.5:1000", "4.4.4.4"); code != http.StatusTooManyRequests {
		t.Errorf("repeat client behind proxy = %d, want 429", code)
	}
}
