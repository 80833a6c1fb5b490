package repository

import (
	"context"

	"vendorpay/backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	List(ctx context.Context, status model.OrderStatus, search string, page, limit int) ([]model.Order, int64, error)
	FindAll(ctx context.Context) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateBatch(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).CreateInBatches(&orders, 200).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Save(order).Error
}

func (r *orderRepository) List(ctx context.Context, status model.OrderStatus, search string, page, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("awb ILIKE ? OR product_name ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindAll loads the full order history for one engine pass.
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := GetDB(ctx, r.db).Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
