package handler

import (
	"io"
	"net/http"

	"repairdesk/internal/app/dto"
	"repairdesk/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxPhotoSize = 10 << 20

// GetPhotos фотографии оборудования по заявке
// @Summary Фото заявки
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {array} dto.PhotoResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/requests/{id}/photos [get]
func (h *Handler) GetPhotos(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok || !h.photosEnabled(c) {
		return
	}

	if _, err := h.Service.GetRequest(c.Request.Context(), session, id); err != nil {
		h.errorHandler(c, err)
		return
	}

	photos, err := h.Photos.ListRequestPhotos(c.Request.Context(), id)
	if err != nil {
		logrus.Errorf("failed to list photos of request %d: %v", id, err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения фото")
		return
	}

	resp := make([]dto.PhotoResponse, len(photos))
	for i, p := range photos {
		resp[i] = dto.PhotoResponse{Name: p.Name, URL: p.URL, Size: p.Size, UploadedAt: p.At}
	}
	c.JSON(http.StatusOK, resp)
}

// UploadPhoto загрузка фото оборудования
// @Summary Загрузка фото
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param file formData file true "Фото"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/requests/{id}/photos [post]
func (h *Handler) UploadPhoto(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok || !h.photosEnabled(c) {
		return
	}

	if _, err := h.Service.GetRequest(c.Request.Context(), session, id); err != nil {
		h.errorHandler(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "файл не передан")
		return
	}
	if file.Size > maxPhotoSize {
		h.errorResponse(c, http.StatusBadRequest, "файл слишком большой")
		return
	}
	if _, ok := storage.ContentType(file.Filename); !ok {
		h.errorResponse(c, http.StatusBadRequest, "поддерживаются только изображения jpg, png, gif, webp")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не удалось прочитать файл")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "не удалось прочитать файл")
		return
	}

	name, err := h.Photos.UploadRequestPhoto(c.Request.Context(), id, data, file.Filename)
	if err != nil {
		logrus.Errorf("failed to upload photo for request %d: %v", id, err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка загрузки фото")
		return
	}

	h.successResponse(c, http.StatusCreated, "фото загружено", gin.H{"name": name})
}

func (h *Handler) photosEnabled(c *gin.Context) bool {
	if h.Photos == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "хранилище фото не настроено")
		return false
	}
	return true
}
