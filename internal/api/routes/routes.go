package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sunelearning/ai-tutor-backend/internal/api/handlers"
	"github.com/sunelearning/ai-tutor-backend/internal/api/middleware"
)

type Deps struct {
	Session  *handlers.SessionHandler
	Chat     *handlers.ChatHandler
	Feedback *handlers.FeedbackHandler
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewRouter builds the engine with logging, recovery, and CORS applied,
// then registers all routes.
func NewRouter(l *logrus.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger(l))
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			envelope{Status: "error", Message: "Internal server error"})
	}))
	r.Use(cors.Default())

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	api.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"message": "API is working!"},
		})
	})

	api.POST("/start-session",
		middleware.RequireJSONFields("name", "email", "domain"),
		d.Session.Start)

	api.POST("/chat",
		middleware.RequireJSONFields("student_id", "query"),
		d.Chat.Chat)

	api.GET("/student/sessions/:student_id", d.Session.ListSessions)

	api.GET("/chat-history/:student_id", d.Chat.History)

	api.POST("/feedback",
		middleware.RequireJSONFields("chat_id", "helpful"),
		d.Feedback.Submit)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope{Status: "error", Message: "Resource not found"})
	})
}
