package comments

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MosinFAM/cms-moderation/internal/models"
	"github.com/MosinFAM/cms-moderation/internal/permissions"
	"github.com/MosinFAM/cms-moderation/internal/storage"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Максимальная длина комментария в рунах
const MaxCommentLength = 2000

// Manager - менеджер тредов комментариев: листинг, публикация с проверкой
// родителя и каскадное удаление. Вложенность строго двухуровневая:
// корень и плоский список ответов под ним.
type Manager struct {
	Storage        storage.Storage
	AllowAnonymous bool // разрешены ли анонимные корневые комментарии из публичной формы
}

// NewManager создаёт менеджер комментариев
func NewManager(s storage.Storage, allowAnonymous bool) *Manager {
	return &Manager{Storage: s, AllowAnonymous: allowAnonymous}
}

// ListComments возвращает комментарии поста, новые первыми. Группировку
// корень+ответы по parentId делает вызывающая сторона.
func (m *Manager) ListComments(ctx context.Context, postID string, postType models.ContentType) ([]*models.Comment, error) {
	if !postType.Valid() {
		return nil, errors.Wrapf(models.ErrValidation, "unknown content type %q", postType)
	}
	return m.Storage.GetCommentsByPost(postID, postType)
}

// PostComment публикует комментарий. actor == nil означает анонимную
// отправку из публичной формы: она разрешена настройкой AllowAnonymous и
// только для корневых комментариев - тредовый UI требует аутентификацию.
func (m *Manager) PostComment(ctx context.Context, actor *models.Actor, anon *models.AnonymousIdentity,
	postID string, postType models.ContentType, content string, parentID *string) (*models.Comment, error) {

	if !postType.Valid() {
		return nil, errors.Wrapf(models.ErrValidation, "unknown content type %q", postType)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Wrap(models.ErrValidation, "comment content is empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, errors.Wrapf(models.ErrValidation, "comment is longer than %d characters", MaxCommentLength)
	}

	comment := models.Comment{
		PostID:   postID,
		PostType: postType,
		Content:  content,
		ParentID: parentID,
	}

	if actor != nil {
		// Для аутентифицированных авторов имя и email зеркалят аккаунт
		comment.AuthorName = actor.Name
		comment.AuthorEmail = actor.Email
		comment.UserRef = &actor.ID
		comment.IsAdmin = actor.IsAdmin()
	} else {
		if !m.AllowAnonymous {
			return nil, errors.Wrap(models.ErrForbidden, "anonymous comments are disabled")
		}
		if parentID != nil {
			return nil, errors.Wrap(models.ErrForbidden, "anonymous replies are not allowed")
		}
		if anon == nil || strings.TrimSpace(anon.Name) == "" || strings.TrimSpace(anon.Email) == "" {
			return nil, errors.Wrap(models.ErrValidation, "anonymous author name and email are required")
		}
		comment.AuthorName = strings.TrimSpace(anon.Name)
		comment.AuthorEmail = strings.TrimSpace(anon.Email)
	}

	if parentID != nil {
		if err := m.validateParent(*parentID, postID, postType); err != nil {
			return nil, err
		}
	}

	created, err := m.Storage.AddComment(comment)
	if err != nil {
		logrus.Errorf("Failed to add comment: %v", err)
		return nil, err
	}
	return created, nil
}

// DeleteComment удаляет комментарий. Для корневого комментария каскадно
// удаляются все прямые ответы; глубже уровней нет. Возвращает все
// удалённые ID. Удаление атомарно: либо весь набор, либо ничего.
func (m *Manager) DeleteComment(ctx context.Context, actor *models.Actor, commentID string) ([]string, error) {
	comment, err := m.Storage.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Комментарий уже удалён (например, другим модератором) —
			// повторное удаление идемпотентно
			logrus.Infof("Comment %s already deleted", commentID)
			return []string{}, nil
		}
		return nil, err
	}

	if !permissions.CanModerateComment(actor, comment) {
		return nil, errors.Wrap(models.ErrForbidden, "not allowed to delete this comment")
	}

	ids := []string{comment.ID}
	replies, err := m.Storage.GetCommentsByParentID(comment.ID)
	if err != nil {
		return nil, err
	}
	for _, reply := range replies {
		ids = append(ids, reply.ID)
	}

	if err := m.Storage.DeleteCommentsByIDs(ids); err != nil {
		return nil, err
	}

	logrus.Infof("Deleted comment %s with %d replies", comment.ID, len(ids)-1)
	return ids, nil
}

// Subscribe подписывает на новые комментарии поста
func (m *Manager) Subscribe(ctx context.Context, postID string, postType models.ContentType) (<-chan *models.Comment, error) {
	if !postType.Valid() {
		return nil, errors.Wrapf(models.ErrValidation, "unknown content type %q", postType)
	}
	return m.Storage.SubscribeToComments(postID, postType)
}

// validateParent проверяет, что родитель существует, корневой и висит
// на том же посте
func (m *Manager) validateParent(parentID, postID string, postType models.ContentType) error {
	parent, err := m.Storage.GetCommentByID(parentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return errors.Wrapf(models.ErrInvalidParent, "parent comment %s does not exist", parentID)
		}
		return err
	}
	if !parent.IsRoot() {
		return errors.Wrap(models.ErrInvalidParent, "replies to replies are not allowed")
	}
	if parent.PostID != postID || parent.PostType != postType {
		return errors.Wrap(models.ErrInvalidParent, "parent comment belongs to another post")
	}
	return nil
}
