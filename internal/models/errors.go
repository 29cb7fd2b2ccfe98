package models

import "errors"

// Таксономия ошибок ядра модерации. Фасад переводит их в HTTP-статусы,
// хранилища и менеджеры оборачивают их контекстом через pkg/errors.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidParent     = errors.New("invalid parent comment")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedAction = errors.New("unsupported action for content type")
)
