package repository

import (
	"context"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReconciliationRepository is intentionally append-only: the log is an audit
// trail, so there is no update or delete.
type ReconciliationRepository interface {
	Append(ctx context.Context, entry *model.ReconciliationLog) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ReconciliationLog, error)
	List(ctx context.Context, page, limit int) ([]model.ReconciliationLog, int64, error)
	FindAll(ctx context.Context) ([]model.ReconciliationLog, error)
}

type reconciliationRepository struct {
	db *gorm.DB
}

func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Append(ctx context.Context, entry *model.ReconciliationLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *reconciliationRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ReconciliationLog, error) {
	var entries []model.ReconciliationLog
	if err := GetDB(ctx, r.db).Where("order_id = ?", orderID).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *reconciliationRepository) List(ctx context.Context, page, limit int) ([]model.ReconciliationLog, int64, error) {
	var entries []model.ReconciliationLog
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ReconciliationLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *reconciliationRepository) FindAll(ctx context.Context) ([]model.ReconciliationLog, error) {
	var entries []model.ReconciliationLog
	if err := GetDB(ctx, r.db).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
