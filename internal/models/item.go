package models

import "encoding/json"

// ContentType - тип контента, к которому относится элемент или комментарий
type ContentType string

const (
	ContentTypeBlog  ContentType = "blog"
	ContentTypeModel ContentType = "model"
)

// Valid проверяет, что тип контента известен
func (t ContentType) Valid() bool {
	return t == ContentTypeBlog || t == ContentTypeModel
}

// Модель элемента контента (пост блога или deal-модель).
// Ядро модерации видит только lifecycle-флаги, payload не интерпретируется.
type ContentItem struct {
	ID        string          `json:"id"`
	Type      ContentType     `json:"type"`
	Published bool            `json:"published"`
	Featured  bool            `json:"featured"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
