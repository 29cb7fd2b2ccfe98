package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/MosinFAM/cms-moderation/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MemoryStorage - хранилище в памяти
type MemoryStorage struct {
	items         map[string]models.ContentItem
	comments      map[string]models.Comment
	subscriptions map[string][]chan *models.Comment
	mu            sync.RWMutex
}

// NewMemoryStorage создает новое in-memory хранилище
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items:         make(map[string]models.ContentItem),
		comments:      make(map[string]models.Comment),
		subscriptions: make(map[string][]chan *models.Comment),
	}
}

// Элементы и подписки ключуются парой (тип, id): id уникален только внутри типа
func itemKey(itemType models.ContentType, id string) string {
	return string(itemType) + ":" + id
}

// AddItem кладёт элемент контента в хранилище. Элементы создаются вне ядра
// модерации, поэтому метода нет в интерфейсе Storage - он нужен для
// запуска с in-memory хранилищем и для тестов.
func (s *MemoryStorage) AddItem(item models.ContentItem) models.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	logrus.Infof("Adding content item %s/%s", item.Type, item.ID)
	s.items[itemKey(item.Type, item.ID)] = item
	return item
}

// GetItemByID возвращает элемент контента по типу и ID
func (s *MemoryStorage) GetItemByID(itemType models.ContentType, id string) (*models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[itemKey(itemType, id)]
	if !exists {
		logrus.Infof("Content item %s/%s not found", itemType, id)
		return nil, models.ErrNotFound
	}
	return &item, nil
}

// UpdateItemField атомарно обновляет один lifecycle-флаг элемента
func (s *MemoryStorage) UpdateItemField(itemType models.ContentType, id, field string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[itemKey(itemType, id)]
	if !exists {
		return models.ErrNotFound
	}

	switch field {
	case "published":
		item.Published = value
	case "featured":
		item.Featured = value
	default:
		return errors.Wrapf(models.ErrValidation, "unknown item field %q", field)
	}

	logrus.Infof("Updating %s/%s: %s=%v", itemType, id, field, value)
	s.items[itemKey(itemType, id)] = item
	return nil
}

// DeleteItem удаляет элемент контента
func (s *MemoryStorage) DeleteItem(itemType models.ContentType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey(itemType, id)
	if _, exists := s.items[key]; !exists {
		return models.ErrNotFound
	}
	logrus.Infof("Deleting content item %s/%s", itemType, id)
	delete(s.items, key)
	return nil
}

// AddComment добавляет комментарий в память, присваивая ID и метку времени
func (s *MemoryStorage) AddComment(comment models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = uuid.New().String()
	comment.CreatedAt = time.Now()

	logrus.Infof("Adding comment to %s/%s", comment.PostType, comment.PostID)
	s.comments[comment.ID] = comment

	// Уведомляем подписчиков
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		key := itemKey(comment.PostType, comment.PostID)
		if subscribers, ok := s.subscriptions[key]; ok {
			for i := 0; i < len(subscribers); {
				select {
				case subscribers[i] <- &comment:
					i++
				default: // Если канал закрыт или клиент отключился — удаляем подписку
					subscribers = append(subscribers[:i], subscribers[i+1:]...)
				}
			}
			s.subscriptions[key] = subscribers
		}
	}()

	return &comment, nil
}

// GetCommentByID возвращает комментарий по ID
func (s *MemoryStorage) GetCommentByID(id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, exists := s.comments[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return &comment, nil
}

// GetCommentsByParentID возвращает прямые ответы на корневой комментарий
func (s *MemoryStorage) GetCommentsByParentID(parentID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var replies []*models.Comment
	for id := range s.comments {
		comment := s.comments[id]
		if comment.ParentID != nil && *comment.ParentID == parentID {
			replies = append(replies, &comment)
		}
	}
	return replies, nil
}

// GetCommentsByPost возвращает все комментарии поста, новые первыми
func (s *MemoryStorage) GetCommentsByPost(postID string, postType models.ContentType) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Comment
	for id := range s.comments {
		comment := s.comments[id]
		if comment.PostID == postID && comment.PostType == postType {
			result = append(result, &comment)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteCommentsByIDs удаляет набор комментариев за один проход под блокировкой:
// каскад корня и его ответов либо применяется целиком, либо не применяется вовсе
func (s *MemoryStorage) DeleteCommentsByIDs(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.Infof("Deleting %d comments", len(ids))
	for _, id := range ids {
		delete(s.comments, id)
	}
	return nil
}

// SubscribeToComments подписка на новые комментарии поста
func (s *MemoryStorage) SubscribeToComments(postID string, postType models.ContentType) (<-chan *models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.Infof("Subscribing to comments for %s/%s", postType, postID)
	ch := make(chan *models.Comment, 1)

	key := itemKey(postType, postID)
	s.subscriptions[key] = append(s.subscriptions[key], ch)
	return ch, nil
}
