package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"avatarsurvey/internal/cache"
	"avatarsurvey/internal/config"
	"avatarsurvey/internal/repository"
	"avatarsurvey/internal/service"
	"avatarsurvey/internal/transport/rest"
	"avatarsurvey/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := config.LoadServerConfig()

	// Load avatar config and log settings
	avatarCfg := config.DefaultAvatarConfig()
	log.Printf("Avatar Config:")
	log.Printf("  Base URL:  %s", avatarCfg.BaseURL)
	log.Printf("  LLM ID:    %s", avatarCfg.LLMID)
	if avatarCfg.IsEnabled() {
		log.Println("  API Key:   configured")
	} else {
		log.Println("  API Key:   NOT SET (using mock session tokens)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisURI, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	answerRepo := repository.NewAnswerRepo(db)

	// Initialize caches
	surveyCache := cache.NewSurveyCache(rdb)
	sessionCache := cache.NewSessionCache(rdb)
	promptCache := cache.NewPromptCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	surveySvc := service.NewSurveyService(surveyRepo, surveyCache)
	avatarClient := service.NewAvatarClient(avatarCfg)
	sessionSvc := service.NewSessionService(surveySvc, sessionRepo, messageRepo, sessionCache, promptCache, avatarClient)
	ingestSvc := service.NewIngestService(sessionSvc, surveySvc, messageRepo, answerRepo)
	exportSvc := service.NewExportService(sessionSvc, surveySvc, answerRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	ingestSvc.SetBroadcaster(wsHub)
	sessionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		SurveyService:  surveySvc,
		SessionService: sessionSvc,
		IngestService:  ingestSvc,
		ExportService:  exportSvc,
		WSHub:          wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  POST /v1/sessions/token")
		log.Println("  POST /v1/ingest")
		log.Println("  GET  /v1/sessions/{id}/transcript")
		log.Println("  GET  /v1/sessions/{id}/audit")
		log.Println("  GET  /v1/export/{sessionId}")
		log.Println("  WS   /v1/ws/sessions/{id}/observe")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
