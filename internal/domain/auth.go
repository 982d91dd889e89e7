package domain

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleOperator Role = "operador"
	RoleViewer   Role = "leitor"
)

type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
