package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yudhis/interviewmate/internal/api/handlers"
	"github.com/yudhis/interviewmate/internal/api/middleware"
)

type Deps struct {
	Interview    *handlers.InterviewHandler
	Conversation *handlers.ConversationHandler
	Document     *handlers.DocumentHandler
	Feedback     *handlers.FeedbackHandler
	Recording    *handlers.RecordingHandler
	WS           *handlers.WSHandler

	AuthSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Exact-method matching: a wrong verb is 405, not 404.
	r.HandleMethodNotAllowed = true

	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	api.Use(middleware.BearerAuth(d.AuthSecret))

	api.POST("/interviews", d.Interview.Start)
	api.POST("/interviews/:session_id/end", d.Interview.End)
	api.POST("/interviews/:session_id/reset", d.Interview.Reset)
	api.GET("/interviews/:session_id", d.Interview.Get)
	api.GET("/interviews", d.Interview.History)

	api.GET("/conversations", d.Conversation.List)
	api.GET("/conversations/:conversation_id", d.Conversation.Get)

	api.POST("/documents", d.Document.Upload)
	api.GET("/documents", d.Document.List)
	api.DELETE("/documents/:document_id", d.Document.Delete)

	api.POST("/feedback", d.Feedback.Generate)

	api.GET("/recordings/:conversation_id", d.Recording.Get)

	// WebSocket
	api.GET("/ws/documents", d.WS.DocumentsWS)
}
