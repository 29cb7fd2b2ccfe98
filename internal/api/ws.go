package api

import (
	"context"
	"net/http"

	"github.com/MosinFAM/cms-moderation/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamComments отдаёт новые комментарии поста по WebSocket -
// живая лента для открытого треда в админке
func (s *Server) streamComments(c *gin.Context) {
	postType := models.ContentType(c.Param("type"))

	ch, err := s.Comments.Subscribe(c.Request.Context(), c.Param("id"), postType)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Читаем только ради детекта закрытия соединения клиентом
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case comment, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(comment); err != nil {
				logrus.Errorf("WebSocket write failed: %v", err)
				return
			}
		}
	}
}
