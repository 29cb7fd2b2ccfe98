// Package permissions - чистые предикаты авторизации ядра модерации.
// Предикаты не ходят в хранилище и не возвращают ошибок: false переводится
// в Forbidden на границе фасада.
package permissions

import "github.com/MosinFAM/cms-moderation/internal/models"

// CanModerateComment сообщает, может ли актор удалить комментарий.
// Разрешено администратору и владельцу (совпадение email).
// Анонимному актору сопоставлять нечего - всегда false.
func CanModerateComment(actor *models.Actor, comment *models.Comment) bool {
	if actor == nil || comment == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.Email != "" && actor.Email == comment.AuthorEmail
}

// CanBulkAct сообщает, может ли актор выполнить массовое действие.
// Все массовые действия затрагивают опубликованный контент целиком,
// поэтому доступны только роли admin.
func CanBulkAct(actor *models.Actor, action models.BulkAction, itemType models.ContentType) bool {
	return actor.IsAdmin()
}
