package handler

import (
	"net/http"
	"time"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/dto"
	"repairdesk/internal/app/middleware"
	"repairdesk/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tokenIssuer = "repairdesk"

// Login аутентификация пользователя
// @Summary Вход в систему
// @Description Проверка логина и пароля с возвратом JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.Service.Authenticate(ctx.Request.Context(), request.Login, request.Password)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}

	accessToken, err := h.signToken(*session, time.Now())
	if err != nil {
		logrus.Errorf("failed to sign token: %v", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка создания токена")
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		UserID:    session.UserID,
		FIO:       session.FIO,
		Role:      int(session.Role()),
		RoleLabel: session.Policy.Label,
		Token:     accessToken,
		ExpiresIn: int(h.Config.JWT.ExpiresIn.Seconds()),
		TokenType: "Bearer",
	})
}

func (h *Handler) signToken(session service.Session, now time.Time) (string, error) {
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
		UserID: session.UserID,
		FIO:    session.FIO,
		Role:   session.Role(),
	})
	return token.SignedString([]byte(h.Config.JWT.Token))
}

// Logout выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *Handler) Logout(ctx *gin.Context) {
	if h.Revoker == nil {
		h.successResponse(ctx, http.StatusOK, "выход выполнен", nil)
		return
	}

	tokenString := middleware.GetToken(ctx)
	claims, err := h.Auth.ParseToken(tokenString)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "неверный токен")
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		if err := h.Revoker.Revoke(ctx.Request.Context(), tokenString, ttl); err != nil {
			logrus.Errorf("failed to revoke token: %v", err)
			h.errorResponse(ctx, http.StatusInternalServerError, "ошибка выхода из системы")
			return
		}
	}

	h.successResponse(ctx, http.StatusOK, "выход выполнен", nil)
}

// Profile текущий пользователь и его роль
// @Summary Профиль пользователя
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *Handler) Profile(ctx *gin.Context) {
	session, ok := h.session(ctx)
	if !ok {
		return
	}

	actions := make([]string, len(session.Policy.Actions))
	for i, a := range session.Policy.Actions {
		actions[i] = string(a)
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{
		UserID:    session.UserID,
		FIO:       session.FIO,
		Role:      int(session.Role()),
		RoleLabel: session.Policy.Label,
		Title:     session.Policy.Title,
		Actions:   actions,
	})
}
