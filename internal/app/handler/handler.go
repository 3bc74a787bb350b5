package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/dto"
	"repairdesk/internal/app/middleware"
	"repairdesk/internal/app/repository"
	"repairdesk/internal/app/role"
	"repairdesk/internal/app/service"
	"repairdesk/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Revoker отзывает токен при выходе
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// PhotoStore хранит фотографии оборудования
type PhotoStore interface {
	UploadRequestPhoto(ctx context.Context, requestID int, fileData []byte, originalFilename string) (string, error)
	ListRequestPhotos(ctx context.Context, requestID int) ([]storage.Photo, error)
}

type Handler struct {
	Service *service.Service
	Auth    *middleware.AuthMiddleware
	Config  *config.Config
	Revoker Revoker
	Photos  PhotoStore
}

// NewHandler создаёт обработчики. revoker и photos могут быть nil:
// тогда выход не отзывает токен, а фото недоступны.
func NewHandler(s *service.Service, auth *middleware.AuthMiddleware, cfg *config.Config, revoker Revoker, photos PhotoStore) *Handler {
	return &Handler{
		Service: s,
		Auth:    auth,
		Config:  cfg,
		Revoker: revoker,
		Photos:  photos,
	}
}

// RegisterRoutes регистрирует все REST API маршруты с авторизацией
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(middleware.Metrics(), middleware.CORS())

	api := router.Group("/api")

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Auth.WithAuthCheck(), h.Logout)
		auth.GET("/profile", h.Auth.WithAuthCheck(), h.Profile)
	}

	// ============ Заявки ============
	// права на изменения проверяет политика роли в сервисе
	requests := api.Group("/requests")
	requests.Use(h.Auth.WithAuthCheck())
	{
		requests.GET("", h.GetRequests)
		requests.POST("", h.CreateRequest)
		requests.GET("/export", h.ExportRequests)
		requests.GET("/:id", h.GetRequest)
		requests.PUT("/:id/status", h.ChangeStatus)
		requests.PUT("/:id/master", h.AssignMaster)
		requests.GET("/:id/comments", h.GetComments)
		requests.POST("/:id/comments", h.AddComment)
		requests.GET("/:id/photos", h.GetPhotos)
		requests.POST("/:id/photos", h.UploadPhoto)
	}

	// ============ Справочники ============
	api.GET("/masters", h.Auth.WithAuthCheck(role.Operator), h.GetMasters)
	api.GET("/equipment-types", h.Auth.WithAuthCheck(), h.GetEquipmentTypes)

	router.GET("/ping", h.Ping)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// ============ Вспомогательные функции ============

// errorHandler отвечает кодом, соответствующим виду ошибки
func (h *Handler) errorHandler(ctx *gin.Context, err error) {
	statusCode, message := statusFor(err)
	if statusCode >= http.StatusInternalServerError {
		logrus.Error(err.Error())
	} else {
		logrus.Warn(err.Error())
	}
	h.errorResponse(ctx, statusCode, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "запись не найдена"
	case errors.Is(err, repository.ErrIntegrity):
		return http.StatusConflict, "данные противоречат ограничениям базы"
	case errors.Is(err, repository.ErrStoreBusy):
		return http.StatusServiceUnavailable, "база данных занята, повторите попытку позже"
	default:
		return http.StatusInternalServerError, "ошибка доступа к базе данных"
	}
}

func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *Handler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// session возвращает сессию, сохранённую middleware авторизации
func (h *Handler) session(c *gin.Context) (service.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
	}
	return session, ok
}

func (h *Handler) requestID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.errorResponse(c, http.StatusBadRequest, "неверный ID заявки")
		return 0, false
	}
	return id, true
}
