package ds

import (
	"repairdesk/internal/app/role"

	"github.com/golang-jwt/jwt"
)

type JWTClaims struct {
	jwt.StandardClaims
	UserID int       `json:"user_id"`
	FIO    string    `json:"fio"`
	Role   role.Role `json:"role"`
}
