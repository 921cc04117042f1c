// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yourusername/auth-forge/internal/account"
	"github.com/yourusername/auth-forge/internal/auth"
	"github.com/yourusername/auth-forge/internal/config"
	"github.com/yourusername/auth-forge/internal/database"
	"github.com/yourusername/auth-forge/internal/logger"
	"github.com/yourusername/auth-forge/internal/middleware"
	"github.com/yourusername/auth-forge/internal/token"
)

// idleTimeout は接続の無通信タイムアウトです。
const idleTimeout = 5 * time.Minute

func main() {
	log := logger.New(slog.LevelInfo)

	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "error", err.Error())
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// データベース接続とマイグレーション。
	// ストア無しで待ち受けても混乱した 500 を量産するだけなので、失敗時は起動を中断します。
	pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err.Error())
	}
	defer pool.Close()

	router := setupRouter(cfg, account.NewPostgresStore(pool), log)

	// サーバーの起動
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		IdleTimeout: idleTimeout,
	}
	log.Info("starting API server", "addr", addr, "mode", cfg.GinMode)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("server stopped", "error", err.Error())
	}
}

// setupRouter はミドルウェアとルーティングの配線を行います。
func setupRouter(cfg *config.Config, store account.Store, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// 集約エラーレスポンダー。診断情報は非本番モードのみ返します。
	router.Use(middleware.ErrorResponder(log, !cfg.IsRelease()))

	// レート制限はルート処理より前段で全トラフィックに適用
	window := time.Duration(cfg.RateLimitWindowMinutes) * time.Minute
	router.Use(middleware.RateLimit(newCounterStore(cfg, log), cfg.RateLimitMax, window, log))

	// CORSミドルウェアの設定（許可オリジン未設定なら同一オリジンのみ）
	if cfg.CORSAllowedOrigins != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		}
		router.Use(cors.New(corsConfig))
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.IsRelease())
	handler := auth.NewHandler(auth.NewService(store, log), tokens)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handler.Register)
			authRoutes.POST("/login", handler.Login)
			authRoutes.POST("/logout", handler.Logout)
			authRoutes.GET("/test", handler.Test)
		}
	}

	// 未定義ルートは要求されたメソッドとパスを含む404を返す
	router.NoRoute(middleware.NotFound())

	return router
}

// newCounterStore はレート制限カウンターの保存先を選択します。
// Redis が設定されていればインスタンス間で共有し、無ければプロセス内で数えます。
func newCounterStore(cfg *config.Config, log *logger.Logger) middleware.CounterStore {
	if cfg.RateLimitRedisURL == "" {
		return middleware.NewMemoryCounter()
	}

	opts, err := redis.ParseURL(cfg.RateLimitRedisURL)
	if err != nil {
		log.Fatal("failed to parse redis url", "error", err.Error())
	}
	return middleware.NewRedisCounter(redis.NewClient(opts))
}
