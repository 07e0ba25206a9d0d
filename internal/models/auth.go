package models

// Role - роль пользователя бэк-офиса.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleUser   Role = "USER"
)

// AuthUser - вошедший пользователь вместе с bearer-токеном.
type AuthUser struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// IsAdmin сообщает, есть ли у пользователя доступ в админку.
func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// LoginRequest - тело запроса входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
