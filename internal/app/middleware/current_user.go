package middleware

import (
	"repairdesk/internal/app/service"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	tokenKey   = "token"
)

// SetSession кладёт сессию пользователя в контекст запроса
func SetSession(c *gin.Context, session service.Session) {
	c.Set(sessionKey, session)
}

// GetSession извлекает сессию из контекста
func GetSession(c *gin.Context) (service.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return service.Session{}, false
	}
	session, ok := value.(service.Session)
	return session, ok
}

// GetToken возвращает токен, с которым пришёл запрос
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
