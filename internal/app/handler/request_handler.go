package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/dto"
	"repairdesk/internal/app/report"
	"repairdesk/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func toRequestResponse(r ds.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:              r.ID,
		StartDate:       r.StartDate,
		EquipmentTypeID: r.OrgTechTypeID,
		Model:           r.OrgTechModel,
		Problem:         r.ProblemDescription,
		Status:          int(r.RequestStatusID),
		StatusName:      r.RequestStatusID.String(),
		CompletionDate:  r.CompletionDate,
		RepairParts:     r.RepairParts,
		MasterID:        r.MasterID,
		ClientID:        r.ClientID,
	}
}

// GetRequests таблица заявок по роли
// @Summary Список заявок
// @Description Заявки, видимые пользователю, в колонках его роли
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Table
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/requests [get]
func (h *Handler) GetRequests(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	table, err := h.Service.View(c.Request.Context(), session)
	if err != nil {
		h.errorHandler(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// GetRequest одна заявка
// @Summary Получение заявки
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *Handler) GetRequest(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	request, err := h.Service.GetRequest(c.Request.Context(), session, id)
	if err != nil {
		h.errorHandler(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponse(*request))
}

// CreateRequest новая заявка
// @Summary Создание заявки
// @Description Заказчик создаёт заявку на себя, оператор - за клиента по телефону
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Данные заявки"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.Service.CreateRequest(c.Request.Context(), session, service.NewRequestInput{
		EquipmentTypeID: req.EquipmentTypeID,
		Model:           req.Model,
		Problem:         req.Problem,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
	})
	if err != nil {
		h.errorHandler(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRequestResponse(*request))
}

// ChangeStatus смена статуса мастером
// @Summary Смена статуса заявки
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.ChangeStatusRequest true "Новый статус"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/requests/{id}/status [put]
func (h *Handler) ChangeStatus(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.ChangeStatus(c.Request.Context(), session, id, ds.Status(req.Status)); err != nil {
		h.errorHandler(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "статус изменён", nil)
}

// AssignMaster назначение мастера оператором
// @Summary Назначение мастера
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.AssignMasterRequest true "Мастер"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/requests/{id}/master [put]
func (h *Handler) AssignMaster(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var req dto.AssignMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.AssignMaster(c.Request.Context(), session, id, req.MasterID); err != nil {
		h.errorHandler(c, err)
		return
	}
	h.successResponse(c, http.StatusOK, "мастер назначен", nil)
}

// GetComments комментарии заявки
// @Summary Комментарии заявки
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {array} dto.CommentResponse
// @Router /api/requests/{id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	comments, err := h.Service.Comments(c.Request.Context(), session, id)
	if err != nil {
		h.errorHandler(c, err)
		return
	}

	resp := make([]dto.CommentResponse, len(comments))
	for i, comment := range comments {
		resp[i] = dto.CommentResponse{RequestID: comment.RequestID, Message: comment.Message}
	}
	c.JSON(http.StatusOK, resp)
}

// AddComment комментарий мастера
// @Summary Добавление комментария
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.CommentRequest true "Комментарий"
// @Success 201 {object} dto.SuccessResponse
// @Router /api/requests/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.AddComment(c.Request.Context(), session, id, req.Message); err != nil {
		h.errorHandler(c, err)
		return
	}
	h.successResponse(c, http.StatusCreated, "комментарий добавлен", nil)
}

// ExportRequests выгрузка таблицы заявок в Excel
// @Summary Экспорт заявок
// @Tags Requests
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/requests/export [get]
func (h *Handler) ExportRequests(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	table, err := h.Service.View(c.Request.Context(), session)
	if err != nil {
		h.errorHandler(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteTable(&buf, table); err != nil {
		logrus.Errorf("failed to export requests: %v", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка формирования файла")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="requests_%d.xlsx"`, session.UserID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
