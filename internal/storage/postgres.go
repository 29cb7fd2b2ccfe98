package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/MosinFAM/cms-moderation/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Канал NOTIFY, в который Postgres-хранилище публикует новые комментарии
const commentsChannel = "comments_channel"

// Колонки, которые разрешено менять через UpdateItemField
var itemColumns = map[string]string{
	"published": "published",
	"featured":  "featured",
}

// PostgresStorage - хранилище в PostgreSQL
type PostgresStorage struct {
	DB         *sql.DB
	DataSource string
}

// NewPostgresStorage создаёт экземпляр PostgreSQL-хранилища
func NewPostgresStorage(db *sql.DB, dataSource string) *PostgresStorage {
	return &PostgresStorage{DB: db, DataSource: dataSource}
}

// GetItemByID возвращает элемент контента по типу и ID
func (s *PostgresStorage) GetItemByID(itemType models.ContentType, id string) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.DB.QueryRow(
		"SELECT id, item_type, published, featured, payload FROM content_items WHERE item_type=$1 AND id=$2",
		itemType, id).
		Scan(&item.ID, &item.Type, &item.Published, &item.Featured, &item.Payload)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logrus.Errorf("Error fetching item %s/%s: %v", itemType, id, err)
		return nil, errors.Wrap(err, "fetch content item")
	}
	return &item, nil
}

// UpdateItemField атомарно обновляет один lifecycle-флаг элемента
func (s *PostgresStorage) UpdateItemField(itemType models.ContentType, id, field string, value bool) error {
	column, ok := itemColumns[field]
	if !ok {
		return errors.Wrapf(models.ErrValidation, "unknown item field %q", field)
	}

	logrus.Infof("Updating %s/%s: %s=%v", itemType, id, field, value)
	res, err := s.DB.Exec(
		"UPDATE content_items SET "+column+"=$1 WHERE item_type=$2 AND id=$3",
		value, itemType, id)
	if err != nil {
		logrus.Errorf("DB update error: %v", err)
		return errors.Wrap(err, "update content item")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update content item")
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteItem удаляет элемент контента
func (s *PostgresStorage) DeleteItem(itemType models.ContentType, id string) error {
	logrus.Infof("Deleting content item %s/%s", itemType, id)
	res, err := s.DB.Exec("DELETE FROM content_items WHERE item_type=$1 AND id=$2", itemType, id)
	if err != nil {
		logrus.Errorf("DB delete error: %v", err)
		return errors.Wrap(err, "delete content item")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete content item")
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddComment добавляет комментарий в БД и публикует его в NOTIFY-канал
func (s *PostgresStorage) AddComment(comment models.Comment) (*models.Comment, error) {
	comment.ID = uuid.New().String()
	comment.CreatedAt = time.Now()

	logrus.Infof("Adding comment to %s/%s", comment.PostType, comment.PostID)
	_, err := s.DB.Exec(
		`INSERT INTO comments (id, post_id, post_type, author_name, author_email, user_ref, content, created_at, parent_id, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		comment.ID, comment.PostID, comment.PostType, comment.AuthorName, comment.AuthorEmail,
		comment.UserRef, comment.Content, comment.CreatedAt, comment.ParentID, comment.IsAdmin)
	if err != nil {
		logrus.Errorf("DB insert error: %v", err)
		return nil, errors.Wrap(err, "insert comment")
	}

	// Отправляем уведомление подписчикам через pg_notify; payload - сам комментарий
	payload, err := json.Marshal(comment)
	if err != nil {
		return nil, errors.Wrap(err, "marshal comment notification")
	}
	if _, err := s.DB.Exec("SELECT pg_notify($1, $2)", commentsChannel, string(payload)); err != nil {
		logrus.Errorf("Notification error: %v", err)
		return nil, errors.Wrap(err, "notify comment")
	}

	return &comment, nil
}

// GetCommentByID возвращает комментарий по ID
func (s *PostgresStorage) GetCommentByID(id string) (*models.Comment, error) {
	row := s.DB.QueryRow(
		`SELECT id, post_id, post_type, author_name, author_email, user_ref, content, created_at, parent_id, is_admin
		 FROM comments WHERE id=$1`, id)
	return scanComment(row)
}

// GetCommentsByParentID возвращает прямые ответы на корневой комментарий
func (s *PostgresStorage) GetCommentsByParentID(parentID string) ([]*models.Comment, error) {
	rows, err := s.DB.Query(
		`SELECT id, post_id, post_type, author_name, author_email, user_ref, content, created_at, parent_id, is_admin
		 FROM comments WHERE parent_id=$1`, parentID)
	if err != nil {
		logrus.Errorf("Error fetching replies: %v", err)
		return nil, errors.Wrap(err, "fetch replies")
	}
	defer rows.Close()
	return collectComments(rows)
}

// GetCommentsByPost возвращает все комментарии поста, новые первыми
func (s *PostgresStorage) GetCommentsByPost(postID string, postType models.ContentType) ([]*models.Comment, error) {
	rows, err := s.DB.Query(
		`SELECT id, post_id, post_type, author_name, author_email, user_ref, content, created_at, parent_id, is_admin
		 FROM comments WHERE post_id=$1 AND post_type=$2 ORDER BY created_at DESC`,
		postID, postType)
	if err != nil {
		logrus.Errorf("Error fetching comments: %v", err)
		return nil, errors.Wrap(err, "fetch comments")
	}
	defer rows.Close()
	return collectComments(rows)
}

// DeleteCommentsByIDs удаляет набор комментариев одним запросом: каскад
// корня и его ответов либо применяется целиком, либо не применяется вовсе
func (s *PostgresStorage) DeleteCommentsByIDs(ids []string) error {
	logrus.Infof("Deleting %d comments", len(ids))
	_, err := s.DB.Exec("DELETE FROM comments WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		logrus.Errorf("DB delete error: %v", err)
		return errors.Wrap(err, "delete comments")
	}
	return nil
}

// SubscribeToComments подписка на новые комментарии поста через LISTEN
func (s *PostgresStorage) SubscribeToComments(postID string, postType models.ContentType) (<-chan *models.Comment, error) {
	logrus.Infof("Subscribing to comments for %s/%s", postType, postID)
	ch := make(chan *models.Comment)

	// Подключаемся к LISTEN через pq.Listener
	listener := pq.NewListener(s.DataSource, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logrus.Errorf("Postgres listener error: %v", err)
		}
	})

	if err := listener.Listen(commentsChannel); err != nil {
		logrus.Errorf("Failed to listen on %s: %v", commentsChannel, err)
		return nil, errors.Wrapf(err, "listen on %s", commentsChannel)
	}

	// Горутина для получения уведомлений
	go func() {
		defer close(ch)
		defer listener.Close()

		for {
			select {
			case <-time.After(90 * time.Second):
				// Проверяем соединение каждые 90 секунд
				if err := listener.Ping(); err != nil {
					logrus.Errorf("Postgres listener ping error: %v", err)
					return
				}

			case notification := <-listener.Notify:
				if notification == nil {
					continue
				}

				var comment models.Comment
				if err := json.Unmarshal([]byte(notification.Extra), &comment); err != nil {
					logrus.Errorf("Error parsing notification payload: %v", err)
					continue
				}

				// Если подписка на нужный пост, отправляем в канал
				if comment.PostID == postID && comment.PostType == postType {
					ch <- &comment
				}
			}
		}
	}()

	logrus.Infof("Listening for comments on %s", commentsChannel)
	return ch, nil
}

func scanComment(row *sql.Row) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(&comment.ID, &comment.PostID, &comment.PostType, &comment.AuthorName,
		&comment.AuthorEmail, &comment.UserRef, &comment.Content, &comment.CreatedAt,
		&comment.ParentID, &comment.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		logrus.Errorf("Error fetching comment: %v", err)
		return nil, errors.Wrap(err, "fetch comment")
	}
	return &comment, nil
}

func collectComments(rows *sql.Rows) ([]*models.Comment, error) {
	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.PostType, &comment.AuthorName,
			&comment.AuthorEmail, &comment.UserRef, &comment.Content, &comment.CreatedAt,
			&comment.ParentID, &comment.IsAdmin)
		if err != nil {
			logrus.Errorf("Error scanning comment row: %v", err)
			return nil, errors.Wrap(err, "scan comment")
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate comments")
	}
	return comments, nil
}
