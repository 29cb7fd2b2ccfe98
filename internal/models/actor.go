package models

// Role - роль аккаунта в админке
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Actor - аутентифицированный пользователь, от имени которого выполняется операция.
// Идентичность разрешается внешним identity-провайдером, ядро её только читает.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin сообщает, имеет ли актор права администратора
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// AnonymousIdentity - имя и email, введённые в публичной форме комментария
// неаутентифицированным посетителем
type AnonymousIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
