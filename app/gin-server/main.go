package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/sunelearning/ai-tutor-backend/config"
	"github.com/sunelearning/ai-tutor-backend/internal/api/handlers"
	"github.com/sunelearning/ai-tutor-backend/internal/api/routes"
	"github.com/sunelearning/ai-tutor-backend/internal/cache"
	"github.com/sunelearning/ai-tutor-backend/internal/logger"
	"github.com/sunelearning/ai-tutor-backend/internal/models"
	"github.com/sunelearning/ai-tutor-backend/internal/providers/llm"
	pgrepo "github.com/sunelearning/ai-tutor-backend/internal/repositories/postgres"
	"github.com/sunelearning/ai-tutor-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	l := logger.New()

	db, err := config.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := db.AutoMigrate(&models.Student{}, &models.Chat{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Session cache is optional; without Redis every listing hits the DB.
	var sessionCache cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := config.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		sessionCache = cache.NewRedisCache(rdb)
		l.Info("Redis connected")
	}

	students := pgrepo.NewStudentRepo(db)
	chats := pgrepo.NewChatRepo(db)

	provider := llm.NewGroq(cfg.GroqAPIKey)

	sessionSvc := services.NewSessionService(students, chats, sessionCache)
	chatSvc := services.NewChatService(students, chats, provider, sessionCache)

	r := routes.NewRouter(l, routes.Deps{
		Session:  handlers.NewSessionHandler(sessionSvc),
		Chat:     handlers.NewChatHandler(chatSvc),
		Feedback: handlers.NewFeedbackHandler(chatSvc),
	})

	l.WithField("port", cfg.Port).Info("AI Tutor startup")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
