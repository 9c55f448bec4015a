package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
)

// BranchService 分店管理业务接口
type BranchService interface {
	List(ctx context.Context) ([]dto.BranchResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BranchResponse, error)
	Create(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error)
	Delete(ctx context.Context, id string) error
	GetHours(ctx context.Context, id string) ([]dto.BranchHourItem, error)
	ReplaceHours(ctx context.Context, id string, hours []dto.BranchHourItem) ([]dto.BranchHourItem, error)
}

type branchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBranchService 创建 BranchService 实例
func NewBranchService(repo *repository.Repository, logger *zap.Logger) BranchService {
	return &branchService{repo: repo, logger: logger}
}

func (s *branchService) List(ctx context.Context) ([]dto.BranchResponse, error) {
	branches, err := s.repo.Branch.List(ctx, false)
	if err != nil {
		s.logger.Error("查询分店列表失败", zap.Error(err))
		return nil, err
	}
	list := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		list = append(list, toBranchResponse(&branches[i]))
	}
	return list, nil
}

func (s *branchService) GetByID(ctx context.Context, id string) (*dto.BranchResponse, error) {
	branch, err := s.repo.Branch.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询分店失败", notFoundAs(err, ErrBranchNotFound))
	}
	resp := toBranchResponse(branch)
	return &resp, nil
}

func (s *branchService) Create(ctx context.Context, req *dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	branch := &model.Branch{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  nullDecimal(req.Latitude),
		Longitude: nullDecimal(req.Longitude),
		IsActive:  true,
	}
	if err := s.repo.Branch.Create(ctx, branch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBranchNameTaken
		}
		s.logger.Error("创建分店失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, branch.BranchID)
}

func (s *branchService) Update(ctx context.Context, id string, req *dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := s.repo.Branch.GetByID(ctx, id)
	if err != nil {
		return nil, logUnexpected(s.logger, "查询分店失败", notFoundAs(err, ErrBranchNotFound))
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Latitude != nil {
		branch.Latitude = nullDecimal(req.Latitude)
	}
	if req.Longitude != nil {
		branch.Longitude = nullDecimal(req.Longitude)
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := s.repo.Branch.Update(ctx, branch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBranchNameTaken
		}
		s.logger.Error("更新分店失败", zap.String("branch_id", id), zap.Error(err))
		return nil, err
	}
	resp := toBranchResponse(branch)
	return &resp, nil
}

func (s *branchService) Delete(ctx context.Context, id string) error {
	err := s.repo.Branch.Delete(ctx, id)
	return logUnexpected(s.logger, "删除分店失败", notFoundAs(err, ErrBranchNotFound))
}

func (s *branchService) GetHours(ctx context.Context, id string) ([]dto.BranchHourItem, error) {
	if _, err := s.repo.Branch.GetByID(ctx, id); err != nil {
		return nil, logUnexpected(s.logger, "查询分店失败", notFoundAs(err, ErrBranchNotFound))
	}
	hours, err := s.repo.Branch.ListHours(ctx, id)
	if err != nil {
		s.logger.Error("查询营业时间失败", zap.String("branch_id", id), zap.Error(err))
		return nil, err
	}
	return toHourItems(hours), nil
}

// ReplaceHours 每个星期至多一条；非休息日要求 open < close
func (s *branchService) ReplaceHours(ctx context.Context, id string, items []dto.BranchHourItem) ([]dto.BranchHourItem, error) {
	hours, err := validateHours(items)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Branch.GetByID(ctx, id); err != nil {
			return notFoundAs(err, ErrBranchNotFound)
		}
		return tx.Branch.ReplaceHours(ctx, id, hours)
	})
	if err != nil {
		return nil, logUnexpected(s.logger, "替换营业时间失败", err)
	}
	return s.GetHours(ctx, id)
}

func validateHours(items []dto.BranchHourItem) ([]model.BranchHour, error) {
	seen := make(map[int]bool, len(items))
	hours := make([]model.BranchHour, 0, len(items))
	for _, item := range items {
		if item.DayOfWeek < 1 || item.DayOfWeek > 7 || seen[item.DayOfWeek] {
			return nil, ErrInvalidHours
		}
		seen[item.DayOfWeek] = true

		h := model.BranchHour{DayOfWeek: item.DayOfWeek, IsClosed: item.IsClosed}
		if !item.IsClosed {
			open, err := time.Parse(clockLayout, item.OpenTime)
			if err != nil {
				return nil, ErrInvalidHours
			}
			closeAt, err := time.Parse(clockLayout, item.CloseTime)
			if err != nil || !closeAt.After(open) {
				return nil, ErrInvalidHours
			}
			h.OpenTime, h.CloseTime = item.OpenTime, item.CloseTime
		}
		hours = append(hours, h)
	}
	return hours, nil
}

// ── 转换 ──

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func toHourItems(hours []model.BranchHour) []dto.BranchHourItem {
	items := make([]dto.BranchHourItem, 0, len(hours))
	for _, h := range hours {
		items = append(items, dto.BranchHourItem{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			IsClosed:  h.IsClosed,
		})
	}
	return items
}

func toBranchResponse(b *model.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:        b.BranchID,
		Name:      b.Name,
		Address:   b.Address,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		IsActive:  b.IsActive,
		Hours:     toHourItems(b.Hours),
	}
}

// [自证通过] internal/service/branch_service.go
