package models

// Roles known to the permission table.
const (
	RolAdmin       = "admin"
	RolAbogado     = "abogado"
	RolPracticante = "practicante"
)

// User is the authenticated account returned by /auth/me and /usuarios.
type User struct {
	ID        int     `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     string  `json:"email"`
	Telefono  *string `json:"telefono,omitempty"`
	Rol       string  `json:"rol"`
	Activo    bool    `json:"activo"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Telefono string `json:"telefono,omitempty"`
	Rol      string `json:"rol,omitempty"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
