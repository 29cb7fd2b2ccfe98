package permissions

import (
	"testing"

	"github.com/MosinFAM/cms-moderation/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanModerateComment_Admin(t *testing.T) {
	actor := &models.Actor{ID: "1", Email: "admin@example.com", Role: models.RoleAdmin}
	comment := &models.Comment{ID: "c1", AuthorEmail: "someone@example.com"}

	// Админ может модерировать чужой комментарий
	assert.True(t, CanModerateComment(actor, comment))
}

func TestCanModerateComment_Owner(t *testing.T) {
	actor := &models.Actor{ID: "2", Email: "owner@example.com", Role: models.RoleViewer}
	comment := &models.Comment{ID: "c1", AuthorEmail: "owner@example.com"}

	// Владелец (совпадение email) может удалить свой комментарий без админ-роли
	assert.True(t, CanModerateComment(actor, comment))
}

func TestCanModerateComment_OtherUser(t *testing.T) {
	actor := &models.Actor{ID: "3", Email: "other@example.com", Role: models.RoleEditor}
	comment := &models.Comment{ID: "c1", AuthorEmail: "owner@example.com"}

	assert.False(t, CanModerateComment(actor, comment))
}

func TestCanModerateComment_Anonymous(t *testing.T) {
	comment := &models.Comment{ID: "c1", AuthorEmail: "owner@example.com"}

	// Анонимному актору сопоставлять нечего
	assert.False(t, CanModerateComment(nil, comment))
}

func TestCanModerateComment_EmptyEmails(t *testing.T) {
	actor := &models.Actor{ID: "4", Role: models.RoleViewer}
	comment := &models.Comment{ID: "c1"}

	// Пустой email не считается совпадением владения
	assert.False(t, CanModerateComment(actor, comment))
}

func TestCanModerateComment_NoComment(t *testing.T) {
	actor := &models.Actor{ID: "1", Email: "admin@example.com", Role: models.RoleAdmin}

	assert.False(t, CanModerateComment(actor, nil))
}

func TestCanBulkAct_Admin(t *testing.T) {
	actor := &models.Actor{ID: "1", Role: models.RoleAdmin}

	assert.True(t, CanBulkAct(actor, models.ActionDelete, models.ContentTypeBlog))
	assert.True(t, CanBulkAct(actor, models.ActionFeature, models.ContentTypeModel))
}

func TestCanBulkAct_NonAdminRoles(t *testing.T) {
	editor := &models.Actor{ID: "2", Role: models.RoleEditor}
	viewer := &models.Actor{ID: "3", Role: models.RoleViewer}

	// Массовые действия доступны только админу
	assert.False(t, CanBulkAct(editor, models.ActionDelete, models.ContentTypeBlog))
	assert.False(t, CanBulkAct(viewer, models.ActionPublish, models.ContentTypeBlog))
	assert.False(t, CanBulkAct(nil, models.ActionDelete, models.ContentTypeBlog))
}
