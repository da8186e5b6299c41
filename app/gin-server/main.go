package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yudhis/interviewmate/config"
	"github.com/yudhis/interviewmate/internal/api/handlers"
	"github.com/yudhis/interviewmate/internal/api/middleware"
	"github.com/yudhis/interviewmate/internal/api/routes"
	"github.com/yudhis/interviewmate/internal/cache"
	"github.com/yudhis/interviewmate/internal/logger"
	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/providers/llm"
	mongorepo "github.com/yudhis/interviewmate/internal/repositories/mongo"
	pgrepo "github.com/yudhis/interviewmate/internal/repositories/postgres"
	"github.com/yudhis/interviewmate/internal/services"
	"github.com/yudhis/interviewmate/internal/storage"
	"github.com/yudhis/interviewmate/internal/tavus"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	l := logger.New()
	ctx := context.Background()

	// PostgreSQL (session history)
	db, err := config.OpenPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := db.AutoMigrate(&models.InterviewSession{}); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// MongoDB (feedback archive)
	mongoClient, err := config.OpenMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	feedbackRepo := mongorepo.NewFeedbackRepo(mongoClient.Database(cfg.MongoDB))
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	// Redis (conversation-list cache)
	rdb, err := config.OpenRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	// Outbound providers
	tavusClient := tavus.NewClient(cfg.TavusAPIKey, cfg.TavusBaseURL, l)

	var provider llm.Provider
	switch cfg.LLMProvider {
	case "vertex":
		provider, err = llm.NewVertexGemini(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("Vertex init error: %v", err)
		}
	default:
		provider = llm.NewOpenAIChat(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}
	defer provider.Close()

	// Recording storage is optional; absence is a supported deployment.
	var store storage.ObjectStore
	if cfg.RecordingsConfigured() {
		gcsStore, err := storage.NewGCSStore(ctx, cfg.RecordingsBucket)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		defer gcsStore.Close()
		store = gcsStore
		l.WithField("bucket", cfg.RecordingsBucket).Info("recording storage enabled")
	} else {
		l.Info("recording storage not configured")
	}

	// Services
	sessionSvc := services.NewSessionService(pgrepo.NewSessionRepo(db), tavusClient, l)
	interviewSvc := services.NewInterviewService(cfg, tavusClient, sessionSvc, cache.NewRedis(rdb, "interviewmate"), l)
	documentSvc := services.NewDocumentService(tavusClient, l)
	feedbackSvc := services.NewFeedbackService(cfg, tavusClient, provider, feedbackRepo, l)
	recordingSvc := services.NewRecordingService(store, tavusClient, cfg.RecordingsPrefix, l)

	// HTTP server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Interview:    handlers.NewInterviewHandler(interviewSvc, sessionSvc),
		Conversation: handlers.NewConversationHandler(interviewSvc),
		Document:     handlers.NewDocumentHandler(documentSvc),
		Feedback:     handlers.NewFeedbackHandler(feedbackSvc),
		Recording:    handlers.NewRecordingHandler(recordingSvc),
		WS:           handlers.NewWSHandler(documentSvc, l),
		AuthSecret:   cfg.AuthJWTSecret,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
