package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendorpay/backend/internal/model"
	"vendorpay/backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderResponse struct {
	ID               uuid.UUID `json:"id"`
	ImportBatchID    uuid.UUID `json:"import_batch_id"`
	AWB              string    `json:"awb"`
	SupplierID       uuid.UUID `json:"supplier_id"`
	ProductName      string    `json:"product_name"`
	Qty              int       `json:"qty"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	StatusRaw        string    `json:"status_raw"`
	Courier          string    `json:"courier"`
	ChannelOrderDate *string   `json:"channel_order_date"`
	OrderDate        *string   `json:"order_date"`
	DeliveredDate    *string   `json:"delivered_date"`
	RTSDate          *string   `json:"rts_date"`
	UnitPrice        string    `json:"unit_price"`
	LineAmount       string    `json:"line_amount"`
	HSN              string    `json:"hsn"`
	CreatedAt        time.Time `json:"created_at"`
}

// OrderService exposes read access to the imported order ledger. Writes go
// through the import and reconciliation services.
type OrderService interface {
	GetOrders(ctx context.Context, status, search string, page, limit int) ([]OrderResponse, int64, error)
	GetOrderByID(ctx context.Context, id string) (OrderResponse, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func toOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		ImportBatchID:    o.ImportBatchID,
		AWB:              o.AWB,
		SupplierID:       o.SupplierID,
		ProductName:      o.ProductName,
		Qty:              o.Qty,
		Currency:         o.Currency,
		Status:           string(o.Status),
		StatusRaw:        o.StatusRaw,
		Courier:          o.Courier,
		ChannelOrderDate: isoDate(o.ChannelOrderDate),
		OrderDate:        isoDate(o.OrderDate),
		DeliveredDate:    isoDate(o.DeliveredDate),
		RTSDate:          isoDate(o.RTSDate),
		UnitPrice:        o.UnitPrice,
		LineAmount:       o.LineAmount,
		HSN:              o.HSN,
		CreatedAt:        o.CreatedAt,
	}
}

func (s *orderService) GetOrders(ctx context.Context, status, search string, page, limit int) ([]OrderResponse, int64, error) {
	var statusFilter model.OrderStatus
	if status != "" {
		statusFilter = model.ParseOrderStatus(status)
	}

	orders, total, err := s.orderRepo.List(ctx, statusFilter, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	res := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return res, total, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, fmt.Errorf("order not found")
		}
		return OrderResponse{}, fmt.Errorf("failed to fetch order: %w", err)
	}

	return toOrderResponse(*order), nil
}
