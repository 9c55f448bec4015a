package model

import (
	"time"

	"gorm.io/gorm"
)

// 取消申请状态
const (
	CancelStatusPendingAdmin = "pending_admin"
	CancelStatusApproved     = "approved"
	CancelStatusRejected     = "rejected"
)

// CancelRequest 取消申请表 — 对应 cancel_requests
// 同一班次最多一条 pending_admin 记录（部分唯一索引）
type CancelRequest struct {
	CancelRequestID     string     `gorm:"type:uuid;primaryKey"                                                                     json:"cancel_request_id"`
	ShiftID             string     `gorm:"type:uuid;not null;index:idx_cancel_requests_pending_shift,unique,where:status = 'pending_admin'" json:"shift_id"`
	RequesterID         string     `gorm:"type:uuid;not null"                                                                       json:"requester_id"`
	OriginalShiftStatus string     `gorm:"type:varchar(20);not null"                                                                json:"original_shift_status"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending_admin'"                                        json:"status"`
	ReplacementID       *string    `gorm:"type:uuid"                                                                                json:"replacement_id,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy          *string    `gorm:"type:uuid"                                                                                json:"resolved_by,omitempty"`
	BaseModel

	// 关联
	Shift       *Shift `gorm:"foreignKey:ShiftID;references:ShiftID"       json:"shift,omitempty"`
	Requester   *User  `gorm:"foreignKey:RequesterID;references:UserID"    json:"requester,omitempty"`
	Replacement *User  `gorm:"foreignKey:ReplacementID;references:UserID"  json:"replacement,omitempty"`
}

// TableName 指定表名
func (CancelRequest) TableName() string { return "cancel_requests" }

// BeforeCreate 生成主键
func (r *CancelRequest) BeforeCreate(*gorm.DB) error {
	ensureID(&r.CancelRequestID)
	return nil
}

// [自证通过] internal/model/cancel_request.go
