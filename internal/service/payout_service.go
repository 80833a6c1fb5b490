package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vendorpay/backend/internal/model"
	"vendorpay/backend/internal/notification"
	"vendorpay/backend/internal/payout"
	"vendorpay/backend/internal/repository"
)

// PayoutService runs the payout engine over the current database snapshot.
type PayoutService interface {
	CalculatePayouts(ctx context.Context, basis string) (payout.Result, error)
	PreviewNotice(ctx context.Context, supplierName, currency, basis string, from, to time.Time) (notification.PayoutNotice, error)
}

type payoutService struct {
	orderRepo    repository.OrderRepository
	priceRepo    repository.PriceEntryRepository
	supplierRepo repository.SupplierRepository
}

func NewPayoutService(orderRepo repository.OrderRepository, priceRepo repository.PriceEntryRepository, supplierRepo repository.SupplierRepository) PayoutService {
	return &payoutService{orderRepo: orderRepo, priceRepo: priceRepo, supplierRepo: supplierRepo}
}

// loadSnapshot fetches the three collections one engine pass needs.
func (s *payoutService) loadSnapshot(ctx context.Context) ([]model.Order, []model.PriceEntry, []model.Supplier, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load orders: %w", err)
	}
	entries, err := s.priceRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load price entries: %w", err)
	}
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load suppliers: %w", err)
	}
	return orders, entries, suppliers, nil
}

func (s *payoutService) CalculatePayouts(ctx context.Context, basis string) (payout.Result, error) {
	orders, entries, suppliers, err := s.loadSnapshot(ctx)
	if err != nil {
		return payout.Result{}, err
	}
	return payout.CalculatePayouts(orders, entries, suppliers, payout.ParsePricingBasis(basis)), nil
}

// PreviewNotice composes a payout notification for one supplier over the given
// period without sending anything.
func (s *payoutService) PreviewNotice(ctx context.Context, supplierName, currency, basis string, from, to time.Time) (notification.PayoutNotice, error) {
	if supplierName == "" {
		return notification.PayoutNotice{}, fmt.Errorf("supplier name is required")
	}
	if to.Before(from) {
		return notification.PayoutNotice{}, fmt.Errorf("period end precedes period start")
	}
	if currency == "" {
		currency = payout.DefaultCurrency
	}

	orders, entries, suppliers, err := s.loadSnapshot(ctx)
	if err != nil {
		return notification.PayoutNotice{}, err
	}

	// Restrict the pass to orders delivered inside the payout period.
	scoped := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.DeliveredDate == nil {
			continue
		}
		d := *o.DeliveredDate
		if d.Before(from) || d.After(to.Add(24*time.Hour-time.Nanosecond)) {
			continue
		}
		scoped = append(scoped, o)
	}

	result := payout.CalculatePayouts(scoped, entries, suppliers, payout.ParsePricingBasis(basis))
	for _, row := range result.SupplierSummary {
		if strings.EqualFold(row.SupplierName, supplierName) && row.Currency == currency {
			return notification.FromSummary(row, from, to), nil
		}
	}

	return notification.PayoutNotice{}, fmt.Errorf("no payable orders for supplier '%s' in %s over the requested period", supplierName, currency)
}
