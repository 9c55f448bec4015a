package dto

import "github.com/shopspring/decimal"

// ── 分店模块 DTO ──

// CreateBranchRequest 创建分店请求
type CreateBranchRequest struct {
	Name      string           `json:"name"      binding:"required,max=100"`
	Address   string           `json:"address"   binding:"max=500"`
	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`
}

// UpdateBranchRequest 更新分店请求
type UpdateBranchRequest struct {
	Name      *string          `json:"name"    binding:"omitempty,max=100"`
	Address   *string          `json:"address" binding:"omitempty,max=500"`
	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`
	IsActive  *bool            `json:"is_active"`
}

// BranchHourItem 单日营业时间
type BranchHourItem struct {
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

// ReplaceBranchHoursRequest 整体替换营业时间
type ReplaceBranchHoursRequest struct {
	Hours []BranchHourItem `json:"hours" binding:"dive"`
}

// BranchResponse 分店响应
type BranchResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	Latitude  decimal.NullDecimal `json:"latitude"`
	Longitude decimal.NullDecimal `json:"longitude"`
	IsActive  bool                `json:"is_active"`
	Hours     []BranchHourItem    `json:"hours"`
}

// [自证通过] internal/dto/branch.go
