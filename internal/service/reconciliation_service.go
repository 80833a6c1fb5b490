package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendorpay/backend/internal/model"
	"vendorpay/backend/internal/payout"
	"vendorpay/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EventBroadcaster pushes reconciliation events to connected dashboard
// clients. The websocket hub satisfies this.
type EventBroadcaster interface {
	Broadcast(event string, payload interface{})
}

// --- DTOs ---

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type ReconciliationEntryResponse struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	AWB            string    `json:"awb"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Impact         string    `json:"impact"` // negative = clawback
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"created_at"`
}

// --- Interface ---

// ReconciliationService applies post-import status corrections. Every change
// appends to the reconciliation log; entries are never rewritten.
type ReconciliationService interface {
	ChangeOrderStatus(ctx context.Context, orderID string, req ChangeStatusRequest) (ReconciliationEntryResponse, error)
	GetLog(ctx context.Context, page, limit int) ([]ReconciliationEntryResponse, int64, error)
	GetOrderLog(ctx context.Context, orderID string) ([]ReconciliationEntryResponse, error)
}

type reconciliationService struct {
	orderRepo   repository.OrderRepository
	reconRepo   repository.ReconciliationRepository
	txManager   repository.TransactionManager
	broadcaster EventBroadcaster
}

func NewReconciliationService(orderRepo repository.OrderRepository, reconRepo repository.ReconciliationRepository, txManager repository.TransactionManager, broadcaster EventBroadcaster) ReconciliationService {
	return &reconciliationService{orderRepo: orderRepo, reconRepo: reconRepo, txManager: txManager, broadcaster: broadcaster}
}

func toReconciliationResponse(e model.ReconciliationLog) ReconciliationEntryResponse {
	return ReconciliationEntryResponse{
		ID:             e.ID,
		OrderID:        e.OrderID,
		AWB:            e.AWB,
		PreviousStatus: string(e.PreviousStatus),
		NewStatus:      string(e.NewStatus),
		Impact:         e.Impact.StringFixed(2),
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
	}
}

// payoutImpact quantifies what a status transition does to the supplier's
// payable amount. Leaving payable claws the line amount back, entering payable
// restores it, anything else is neutral.
func payoutImpact(prev, next model.OrderStatus, lineAmount string) decimal.Decimal {
	amount := payout.ParseAmount(lineAmount)
	switch {
	case prev.Payable() && !next.Payable():
		return amount.Neg()
	case !prev.Payable() && next.Payable():
		return amount
	default:
		return decimal.Zero
	}
}

func (s *reconciliationService) ChangeOrderStatus(ctx context.Context, orderID string, req ChangeStatusRequest) (ReconciliationEntryResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return ReconciliationEntryResponse{}, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReconciliationEntryResponse{}, fmt.Errorf("order not found")
		}
		return ReconciliationEntryResponse{}, fmt.Errorf("failed to fetch order: %w", err)
	}

	newStatus := model.ParseOrderStatus(req.Status)
	prevStatus := order.Status

	entry := model.ReconciliationLog{
		OrderID:        order.ID,
		AWB:            order.AWB,
		PreviousStatus: prevStatus,
		NewStatus:      newStatus,
		Impact:         payoutImpact(prevStatus, newStatus, order.LineAmount),
		Note:           req.Note,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order.Status = newStatus
		order.StatusRaw = req.Status
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return s.reconRepo.Append(txCtx, &entry)
	})
	if err != nil {
		return ReconciliationEntryResponse{}, err
	}

	resp := toReconciliationResponse(entry)
	if s.broadcaster != nil {
		s.broadcaster.Broadcast("reconciliation.status_changed", resp)
	}
	return resp, nil
}

func (s *reconciliationService) GetLog(ctx context.Context, page, limit int) ([]ReconciliationEntryResponse, int64, error) {
	entries, total, err := s.reconRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reconciliation log: %w", err)
	}

	res := make([]ReconciliationEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toReconciliationResponse(e))
	}
	return res, total, nil
}

func (s *reconciliationService) GetOrderLog(ctx context.Context, orderID string) ([]ReconciliationEntryResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	entries, err := s.reconRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reconciliation log: %w", err)
	}

	res := make([]ReconciliationEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toReconciliationResponse(e))
	}
	return res, nil
}
