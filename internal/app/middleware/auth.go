package middleware

import (
	"context"
	"net/http"
	"strings"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/role"
	"repairdesk/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// Blacklist - хранилище отозванных токенов
type Blacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	Blacklist Blacklist
	Config    *config.Config
}

// NewAuthMiddleware создаёт middleware; blacklist может быть nil, если Redis не настроен
func NewAuthMiddleware(blacklist Blacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// WithAuthCheck middleware для проверки авторизации с ролями.
// Без ролей пропускает любого вошедшего пользователя.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx)
		if jwtStr == "" {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Проверяем токен в blacklist Redis
		if am.Blacklist != nil {
			revoked, err := am.Blacklist.IsRevoked(gCtx.Request.Context(), jwtStr)
			if err != nil {
				logrus.Errorf("failed to check token blacklist: %v", err)
				gCtx.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
			if revoked {
				gCtx.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		claims, err := am.ParseToken(jwtStr)
		if err != nil {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(claims.Role, assignedRoles) {
			gCtx.AbortWithStatus(http.StatusForbidden)
			return
		}

		SetSession(gCtx, service.Session{
			UserID: claims.UserID,
			FIO:    claims.FIO,
			Policy: role.For(claims.Role),
		})
		gCtx.Set(tokenKey, jwtStr)

		gCtx.Next()
	}
}

// ParseToken парсит и валидирует JWT токен
func (am *AuthMiddleware) ParseToken(tokenString string) (*ds.JWTClaims, error) {
	claims := &ds.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != am.Config.JWT.SigningMethod.Alg() {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return []byte(am.Config.JWT.Token), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("token is invalid", jwt.ValidationErrorMalformed)
	}
	return claims, nil
}

// BearerToken достаёт токен из заголовка Authorization
func BearerToken(c *gin.Context) string {
	return strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
}

func hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
