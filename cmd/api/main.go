// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yourusername/auth-forge/internal/auth"
	"github.com/yourusername/auth-forge/internal/config"
	"github.com/yourusername/auth-forge/internal/session"
	"github.com/yourusername/auth-forge/internal/user"
)

const startupTimeout = 10 * time.Second

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute

	// ユーザーストアの選択（MONGO_URI 未設定時はインメモリ）
	users, cleanup, err := newUserStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize user store: %v", err)
	}
	defer cleanup()

	// セッションストアの選択（SESSION_REDIS_URL 未設定時はインメモリ）
	sessions, err := newSessionStore(cfg, sessionTTL)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	// Cookie署名鍵。未設定の場合は起動ごとのランダム鍵で代用する
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("Failed to generate session secret: %v", err)
		}
		log.Printf("SESSION_SECRET not set; using an ephemeral key (sessions will not survive restarts)")
	}

	cookies := auth.NewCookieCodec(secret, int(sessionTTL.Seconds()), cfg.GinMode == gin.ReleaseMode)
	strategy := auth.NewPasswordStrategy(users)
	handler := auth.NewHandler(users, sessions, strategy, cookies, cfg.BcryptCost)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, handler)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newUserStore はドキュメントストアへ接続し、ユーザーストアを返します。
func newUserStore(cfg *config.Config) (user.Store, func(), error) {
	if cfg.MongoURI == "" {
		log.Printf("MONGO_URI not set; using in-memory user store (data will not survive restarts)")
		return user.NewMemoryStore(), func() {}, nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	store := user.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
		defer cancel()
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("Failed to disconnect from MongoDB: %v", err)
		}
	}
	return store, cleanup, nil
}

// newSessionStore はセッションストアを返します。
func newSessionStore(cfg *config.Config, ttl time.Duration) (session.Store, error) {
	if cfg.SessionRedisURL == "" {
		log.Printf("SESSION_REDIS_URL not set; using in-memory session store")
		return session.NewMemoryStore(ttl), nil
	}

	opt, err := redis.ParseURL(cfg.SessionRedisURL)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(redis.NewClient(opt), ttl), nil
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "auth-forge-api",
		"version": "0.1.0",
	})
}

// setupRoutes は認証エンドポイントの配線を行います。
func setupRoutes(router *gin.Engine, handler *auth.Handler) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)
	router.POST("/logout", handler.RequireLogin(), handler.Logout)
	router.GET("/me", handler.RequireLogin(), handler.Me)
}
