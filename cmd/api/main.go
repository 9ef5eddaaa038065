package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/shike-app/auth-api/internal/config"
	"github.com/shike-app/auth-api/internal/infrastructure/codes"
	"github.com/shike-app/auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/shike-app/auth-api/internal/infrastructure/jwt"
	"github.com/shike-app/auth-api/internal/infrastructure/smtp"
	transporthttp "github.com/shike-app/auth-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Bootstrap the users table (created if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoUsersTable)

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.SessionTokenTTL, cfg.ResetTokenTTL)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// Verification codes live in Redis when REDIS_ADDR is set so replicas
	// share one code space; otherwise in a process-local map.
	var codeStore transporthttp.CodeStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis unreachable at %s: %v", cfg.RedisAddr, err)
		}
		codeStore = codes.NewRedisStore(rdb)
		log.Printf("verification codes stored in redis (%s)", cfg.RedisAddr)
	} else {
		codeStore = codes.NewMemoryStore()
		log.Println("verification codes stored in memory (single instance only)")
	}

	deps := &transporthttp.Deps{
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoUsersTable),
		CodeStore:   codeStore,
		Mailer:      smtp.NewMailer(cfg),
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
