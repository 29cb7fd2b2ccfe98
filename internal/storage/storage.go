package storage

import "github.com/MosinFAM/cms-moderation/internal/models"

// Storage - интерфейс для всех типов хранилищ (in-memory и PostgreSQL).
// Каждый вызов атомарен на уровне хранилища: каскадное удаление и
// идемпотентность батчей опираются на эту гарантию, своих блокировок
// поверх хранилища ядро не держит.
type Storage interface {
	// Элементы контента
	GetItemByID(itemType models.ContentType, id string) (*models.ContentItem, error)
	UpdateItemField(itemType models.ContentType, id, field string, value bool) error
	DeleteItem(itemType models.ContentType, id string) error

	// Комментарии
	AddComment(comment models.Comment) (*models.Comment, error)
	GetCommentByID(id string) (*models.Comment, error)
	GetCommentsByParentID(parentID string) ([]*models.Comment, error)
	GetCommentsByPost(postID string, postType models.ContentType) ([]*models.Comment, error)
	DeleteCommentsByIDs(ids []string) error
	SubscribeToComments(postID string, postType models.ContentType) (<-chan *models.Comment, error)
}
