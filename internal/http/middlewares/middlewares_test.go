package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.GET("/hello/:name", rl.Middleware(KeyByIP), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/hello/jacob", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := call(); w.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d", i, w.Code)
		}
	}

	w := call()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") != "30" {
		t.Fatalf("got Retry-After %q", w.Header().Get("Retry-After"))
	}

	now = now.Add(61 * time.Second)
	if w := call(); w.Code != http.StatusOK {
		t.Fatalf("after window: got status %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get(CtxRequestID)
		c.String(http.StatusOK, id.(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "abc-123" || w.Body.String() != "abc-123" {
		t.Fatalf("request id not propagated: header=%q body=%q", w.Header().Get(requestIDHeader), w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(requestIDHeader)) != 36 {
		t.Fatalf("expected a generated uuid, got %q", w.Header().Get(requestIDHeader))
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example"}))
	r.GET("/hello/:name", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/hello/jacob", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("got allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/hello/jacob", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
