package handler

import (
	"net/http"

	"repairdesk/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// GetMasters мастера для назначения
// @Summary Список мастеров
// @Tags Lookups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MasterResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/masters [get]
func (h *Handler) GetMasters(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	masters, err := h.Service.Masters(c.Request.Context(), session)
	if err != nil {
		h.errorHandler(c, err)
		return
	}

	resp := make([]dto.MasterResponse, len(masters))
	for i, m := range masters {
		resp[i] = dto.MasterResponse{ID: m.ID, FIO: m.FIO, Phone: m.PhoneOrEmpty()}
	}
	c.JSON(http.StatusOK, resp)
}

// GetEquipmentTypes типы оборудования
// @Summary Типы оборудования
// @Tags Lookups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EquipmentTypeResponse
// @Router /api/equipment-types [get]
func (h *Handler) GetEquipmentTypes(c *gin.Context) {
	types, err := h.Service.EquipmentTypes(c.Request.Context())
	if err != nil {
		h.errorHandler(c, err)
		return
	}

	resp := make([]dto.EquipmentTypeResponse, len(types))
	for i, t := range types {
		resp[i] = dto.EquipmentTypeResponse{ID: t.ID, Name: t.Name}
	}
	c.JSON(http.StatusOK, resp)
}
