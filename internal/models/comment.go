package models

import "time"

// Модель комментария к посту или deal-модели
type Comment struct {
	ID          string      `json:"id"`
	PostID      string      `json:"postId"`      // ID контента, к которому прикреплён комментарий
	PostType    ContentType `json:"postType"`    // blog или model
	AuthorName  string      `json:"authorName"`  // отображаемое имя автора
	AuthorEmail string      `json:"authorEmail"` // email автора (ключ владения для модерации)
	UserRef     *string     `json:"userRef"`     // ID аккаунта автора (null для анонимных)
	Content     string      `json:"content"`
	CreatedAt   time.Time   `json:"createdAt"`
	ParentID    *string     `json:"parentId"` // ID корневого комментария (null, если корневой)
	IsAdmin     bool        `json:"isAdmin"`  // автор был админом на момент создания
}

// IsRoot сообщает, является ли комментарий корневым
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
