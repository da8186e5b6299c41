package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yudhis/interviewmate/internal/models"
	"github.com/yudhis/interviewmate/internal/services"
)

// WSHandler streams knowledge-base document status over a websocket so the
// setup screen does not have to blind-poll. The server-side poll loop lives
// exactly as long as the connection.
type WSHandler struct {
	documents services.DocumentService
	log       *logrus.Logger
	upgrader  websocket.Upgrader
}

func NewWSHandler(documents services.DocumentService, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		documents: documents,
		log:       log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsDocumentsMsg struct {
	Type      string                     `json:"type"`
	Documents []models.KnowledgeDocument `json:"documents"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (h *WSHandler) DocumentsWS(c *gin.Context) {
	tag := c.Query("tag")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	// Closing the socket cancels the watch through the reader goroutine.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				_ = conn.Close()
				return
			}
		}
	}()

	err = h.documents.Watch(ctx, tag, services.DocumentWatchInterval, func(docs []models.KnowledgeDocument) error {
		if docs == nil {
			docs = []models.KnowledgeDocument{}
		}
		return wc.writeJSON(wsDocumentsMsg{Type: "documents", Documents: docs})
	})
	if err != nil && ctx.Err() == nil {
		h.log.WithError(err).Debug("document watch ended")
	}
}
