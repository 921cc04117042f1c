package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yourusername/auth-forge/internal/apperr"
	"github.com/yourusername/auth-forge/internal/logger"
)

const rateLimitKeyPrefix = "ratelimit:"

// CounterStore は固定ウィンドウのリクエストカウンターです。
// Incr はキーのカウントを1増やし、増加後の値を返します。
// ウィンドウの先頭でカウントは1から始まります。
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit はクライアントIPごとの固定ウィンドウレート制限を行います。
// すべてのルートより前段で動作し、上限超過のリクエストはユースケースに到達しません。
func RateLimit(counters CounterStore, max int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := counters.Incr(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			// カウンター障害で全トラフィックを落とさない。記録して通す。
			log.Error("rate limit counter failed", "error", err.Error())
			c.Next()
			return
		}

		if count > int64(max) {
			_ = c.Error(apperr.RateLimited("Too many requests, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter はプロセス内のカウンター実装です。
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	cleanup time.Duration
}

// NewMemoryCounter は MemoryCounter を作成し、失効エントリーの掃除を開始します。
func NewMemoryCounter() *MemoryCounter {
	m := &MemoryCounter{
		entries: make(map[string]*windowEntry),
		cleanup: 5 * time.Minute,
	}
	go m.cleanupLoop()
	return m
}

// Incr はキーのカウントを増やします。ウィンドウが切れていれば1から数え直します。
func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	entry, ok := m.entries[key]
	if !ok || now.After(entry.resetAt) {
		m.entries[key] = &windowEntry{count: 1, resetAt: now.Add(window)}
		return 1, nil
	}

	entry.count++
	return entry.count, nil
}

func (m *MemoryCounter) cleanupLoop() {
	ticker := time.NewTicker(m.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for key, entry := range m.entries {
			if now.After(entry.resetAt) {
				delete(m.entries, key)
			}
		}
		m.mu.Unlock()
	}
}

// RedisCounter は Redis を使用したカウンター実装です。
// 複数インスタンスでカウンターを共有する場合に選択します。
type RedisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter は RedisCounter を作成します。
func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Incr は INCR でカウントを増やし、ウィンドウ先頭のキーに有効期限を設定します。
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.rdb.Incr(ctx, rateLimitKeyPrefix+key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.rdb.Expire(ctx, rateLimitKeyPrefix+key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
