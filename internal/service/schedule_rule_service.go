package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
)

// ScheduleRuleService 分店排班约束规则业务接口
type ScheduleRuleService interface {
	List(ctx context.Context, branchID string) ([]dto.RuleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RuleResponse, error)
	Create(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type scheduleRuleService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewScheduleRuleService 创建 ScheduleRuleService 实例
func NewScheduleRuleService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ScheduleRuleService {
	return &scheduleRuleService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *scheduleRuleService) List(ctx context.Context, branchID string) ([]dto.RuleResponse, error) {
	rules, err := s.repo.ScheduleRule.List(ctx, branchID)
	if err != nil {
		s.logger.Error("列出排班规则失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RuleResponse, 0, len(rules))
	for i := range rules {
		result = append(result, s.toRuleResponse(&rules[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleRuleService) GetByID(ctx context.Context, id string) (*dto.RuleResponse, error) {
	rule, err := s.repo.ScheduleRule.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询排班规则失败", notFoundAs(err, ErrScheduleRuleNotFound))
	}
	resp := s.toRuleResponse(rule)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleRuleService) Create(ctx context.Context, req *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	if !model.IsValidRuleCondition(req.Condition) {
		return nil, ErrInvalidRuleCondition
	}
	startTime, err := normalizeClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	if err := s.ensureBranch(ctx, req.BranchID); err != nil {
		return nil, err
	}

	rule := &model.ScheduleRule{
		BranchID:  req.BranchID,
		Condition: req.Condition,
		StartTime: startTime,
		IsEnabled: true,
	}
	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}
	if err := s.repo.ScheduleRule.Create(ctx, rule); err != nil {
		s.logger.Error("创建排班规则失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建排班规则",
		zap.String("rule_id", rule.RuleID),
		zap.String("branch_id", rule.BranchID),
		zap.String("condition", rule.Condition))
	return s.GetByID(ctx, rule.RuleID)
}

// ────────────────────── Update ──────────────────────

func (s *scheduleRuleService) Update(ctx context.Context, id string, req *dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	rule, err := s.repo.ScheduleRule.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询排班规则失败", notFoundAs(err, ErrScheduleRuleNotFound))
	}

	if req.BranchID != nil && *req.BranchID != rule.BranchID {
		if err := s.ensureBranch(ctx, *req.BranchID); err != nil {
			return nil, err
		}
		rule.BranchID = *req.BranchID
	}
	if req.Condition != nil {
		if !model.IsValidRuleCondition(*req.Condition) {
			return nil, ErrInvalidRuleCondition
		}
		rule.Condition = *req.Condition
	}
	if req.StartTime != nil {
		startTime, err := normalizeClock(*req.StartTime)
		if err != nil {
			return nil, err
		}
		rule.StartTime = startTime
	}
	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}

	if err := s.repo.ScheduleRule.Update(ctx, rule); err != nil {
		s.logger.Error("更新排班规则失败", zap.String("rule_id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleRuleService) Delete(ctx context.Context, id string) error {
	err := s.repo.ScheduleRule.Delete(ctx, id)
	return logUnexpected(s.logger, "删除排班规则失败", notFoundAs(err, ErrScheduleRuleNotFound))
}

// ── 内部辅助 ──

func (s *scheduleRuleService) ensureBranch(ctx context.Context, branchID string) error {
	_, err := s.repo.Branch.GetByID(ctx, branchID)
	return logUnexpected(s.logger, "查询分店失败", notFoundAs(err, ErrBranchNotFound))
}

// normalizeClock 校验 HH:MM 并补齐前导零
func normalizeClock(v string) (string, error) {
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		return "", ErrInvalidRuleTime
	}
	return t.Format(clockLayout), nil
}

func (s *scheduleRuleService) toRuleResponse(rule *model.ScheduleRule) dto.RuleResponse {
	resp := dto.RuleResponse{
		ID:        rule.RuleID,
		BranchID:  rule.BranchID,
		Condition: rule.Condition,
		StartTime: rule.StartTime,
		IsEnabled: rule.IsEnabled,
		CreatedAt: formatTime(rule.CreatedAt, s.loc),
		UpdatedAt: formatTime(rule.UpdatedAt, s.loc),
	}
	if rule.Branch != nil {
		resp.BranchName = rule.Branch.Name
	}
	return resp
}

// [自证通过] internal/service/schedule_rule_service.go
