package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-forge/internal/logger"
)

func TestMemoryCounterIncrements(t *testing.T) {
	counter := NewMemoryCounter()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Incr(context.Background(), "1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("Incr returned error: %v", err)
		}
		if got != want {
			t.Fatalf("Incr = %d, want %d", got, want)
		}
	}

	// 別キーは独立して数える
	got, err := counter.Incr(context.Background(), "5.6.7.8", time.Minute)
	if err != nil {
		t.Fatalf("Incr returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("Incr for new key = %d, want 1", got)
	}
}

func TestMemoryCounterWindowReset(t *testing.T) {
	counter := NewMemoryCounter()

	if _, err := counter.Incr(context.Background(), "1.2.3.4", 10*time.Millisecond); err != nil {
		t.Fatalf("Incr returned error: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	got, err := counter.Incr(context.Background(), "1.2.3.4", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Incr returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected count to restart at 1 after window, got %d", got)
	}
}

func newLimitedRouter(max int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New(slog.LevelError)

	router := gin.New()
	router.Use(ErrorResponder(log, false))
	router.Use(RateLimit(NewMemoryCounter(), max, time.Minute, log))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimitRejectsOverCap(t *testing.T) {
	router := newLimitedRouter(2)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the cap, got %d", rec.Code)
	}
}
