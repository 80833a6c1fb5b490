package repository

import (
	"context"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceEntryRepository interface {
	Create(ctx context.Context, entry *model.PriceEntry) error
	Update(ctx context.Context, entry *model.PriceEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PriceEntry, error)
	List(ctx context.Context, supplierID *uuid.UUID, page, limit int) ([]model.PriceEntry, int64, error)
	FindAll(ctx context.Context) ([]model.PriceEntry, error)
}

type priceEntryRepository struct {
	db *gorm.DB
}

func NewPriceEntryRepository(db *gorm.DB) PriceEntryRepository {
	return &priceEntryRepository{db: db}
}

func (r *priceEntryRepository) Create(ctx context.Context, entry *model.PriceEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *priceEntryRepository) Update(ctx context.Context, entry *model.PriceEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *priceEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PriceEntry{}).Error
}

func (r *priceEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PriceEntry, error) {
	var entry model.PriceEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *priceEntryRepository) List(ctx context.Context, supplierID *uuid.UUID, page, limit int) ([]model.PriceEntry, int64, error) {
	var entries []model.PriceEntry
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.PriceEntry{})
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("effective_from DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// FindAll loads the full price list for one engine pass.
func (r *priceEntryRepository) FindAll(ctx context.Context) ([]model.PriceEntry, error) {
	var entries []model.PriceEntry
	if err := GetDB(ctx, r.db).Order("effective_from DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
