package api

import (
	"errors"
	"net/http"

	"github.com/MosinFAM/cms-moderation/internal/bulk"
	"github.com/MosinFAM/cms-moderation/internal/comments"
	"github.com/MosinFAM/cms-moderation/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server - фасад API модерации: валидирует вход, разрешает актора и
// переводит ошибки ядра в HTTP-статусы
type Server struct {
	Comments *comments.Manager
	Bulk     *bulk.Dispatcher
	Identity IdentityProvider
}

// NewServer создаёт фасад поверх менеджера комментариев и диспетчера
func NewServer(cm *comments.Manager, bd *bulk.Dispatcher, identity IdentityProvider) *Server {
	return &Server{Comments: cm, Bulk: bd, Identity: identity}
}

// Router собирает маршруты фасада
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/posts/:type/:id/comments", s.listComments)
		apiGroup.POST("/posts/:type/:id/comments", s.postComment)
		apiGroup.GET("/posts/:type/:id/comments/ws", s.streamComments)
		apiGroup.DELETE("/comments/:id", s.deleteComment)
		apiGroup.POST("/items/:type/bulk", s.applyBulkAction)
	}

	return r
}

type postCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
	// Поля публичной формы для анонимных авторов
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
}

type bulkRequest struct {
	Action models.BulkAction `json:"action"`
	IDs    []string          `json:"ids"`
}

func (s *Server) listComments(c *gin.Context) {
	postType := models.ContentType(c.Param("type"))

	listed, err := s.Comments.ListComments(c.Request.Context(), c.Param("id"), postType)
	if err != nil {
		respondError(c, err)
		return
	}
	if listed == nil {
		listed = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": listed})
}

func (s *Server) postComment(c *gin.Context) {
	postType := models.ContentType(c.Param("type"))

	var req postCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := s.Identity.Resolve(c)
	var anon *models.AnonymousIdentity
	if actor == nil {
		anon = &models.AnonymousIdentity{Name: req.AuthorName, Email: req.AuthorEmail}
	}

	comment, err := s.Comments.PostComment(c.Request.Context(), actor, anon,
		c.Param("id"), postType, req.Content, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) deleteComment(c *gin.Context) {
	actor := s.Identity.Resolve(c)

	deleted, err := s.Comments.DeleteComment(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedIds": deleted})
}

func (s *Server) applyBulkAction(c *gin.Context) {
	itemType := models.ContentType(c.Param("type"))

	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := s.Identity.Resolve(c)

	result, err := s.Bulk.Apply(c.Request.Context(), actor, req.Action, itemType, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError переводит таксономию ошибок ядра в HTTP-статус
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidParent):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUnsupportedAction):
		status = http.StatusUnprocessableEntity
	default:
		logrus.Errorf("Internal error: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
