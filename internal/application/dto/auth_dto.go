package dto

import "time"

// RegisterRequest entrada para registrar un usuario.
// Si ProfileID está vacío se crea un perfil nuevo con ProfileName y el usuario
// queda como admin; si viene ProfileID el usuario se une a ese perfil.
type RegisterRequest struct {
	ProfileID   string `json:"profile_id"`
	ProfileName string `json:"profile_name"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin hash de password).
type UserResponse struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
