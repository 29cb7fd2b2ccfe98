package api

import (
	"github.com/MosinFAM/cms-moderation/internal/models"

	"github.com/gin-gonic/gin"
)

// IdentityProvider разрешает актора из входящего запроса. Ядро не проверяет
// учётные данные само: этим занимается внешний identity-коллаборатор.
type IdentityProvider interface {
	Resolve(c *gin.Context) *models.Actor
}

// HeaderIdentity читает актора из заголовков, проставленных auth-прокси
// перед сервисом. Отсутствие X-User-Id означает анонимный запрос.
type HeaderIdentity struct{}

func (HeaderIdentity) Resolve(c *gin.Context) *models.Actor {
	id := c.GetHeader("X-User-Id")
	if id == "" {
		return nil
	}

	role := models.Role(c.GetHeader("X-User-Role"))
	switch role {
	case models.RoleAdmin, models.RoleEditor, models.RoleViewer:
	default:
		// Неизвестная роль деградирует до viewer
		role = models.RoleViewer
	}

	return &models.Actor{
		ID:    id,
		Name:  c.GetHeader("X-User-Name"),
		Email: c.GetHeader("X-User-Email"),
		Role:  role,
	}
}
