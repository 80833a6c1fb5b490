package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"vendorpay/backend/internal/export"
	"vendorpay/backend/internal/payout"
	"vendorpay/backend/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportQuery carries the raw filter query parameters before validation.
type ReportQuery struct {
	PeriodFrom string // YYYY-MM-DD
	PeriodTo   string // YYYY-MM-DD
	Currency   string
	Supplier   string
	MinAmount  string // decimal string, supplier-summary floor
}

type ReportService interface {
	GenerateReports(ctx context.Context, q ReportQuery) (payout.Bundle, error)
	ExportWorkbook(ctx context.Context, q ReportQuery) ([]byte, string, error)
}

type reportService struct {
	orderRepo    repository.OrderRepository
	supplierRepo repository.SupplierRepository
	reconRepo    repository.ReconciliationRepository
}

func NewReportService(orderRepo repository.OrderRepository, supplierRepo repository.SupplierRepository, reconRepo repository.ReconciliationRepository) ReportService {
	return &reportService{orderRepo: orderRepo, supplierRepo: supplierRepo, reconRepo: reconRepo}
}

// parseFilters validates the raw query into engine filters. Unknown supplier
// names are passed through untouched; the engine treats them as a no-op.
func parseFilters(q ReportQuery) (payout.Filters, error) {
	var f payout.Filters

	if q.PeriodFrom != "" {
		t, err := time.Parse("2006-01-02", q.PeriodFrom)
		if err != nil {
			return f, fmt.Errorf("invalid period_from date format (expected YYYY-MM-DD): %w", err)
		}
		f.PeriodFrom = &t
	}
	if q.PeriodTo != "" {
		t, err := time.Parse("2006-01-02", q.PeriodTo)
		if err != nil {
			return f, fmt.Errorf("invalid period_to date format (expected YYYY-MM-DD): %w", err)
		}
		f.PeriodTo = &t
	}
	if q.MinAmount != "" {
		d, err := decimal.NewFromString(q.MinAmount)
		if err != nil {
			return f, fmt.Errorf("invalid min_amount value: %w", err)
		}
		f.MinAmount = &d
	}

	f.Currency = q.Currency
	f.Supplier = q.Supplier
	return f, nil
}

func (s *reportService) buildBundle(ctx context.Context, q ReportQuery) (payout.Bundle, error) {
	filters, err := parseFilters(q)
	if err != nil {
		return payout.Bundle{}, err
	}

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return payout.Bundle{}, fmt.Errorf("failed to load orders: %w", err)
	}
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return payout.Bundle{}, fmt.Errorf("failed to load suppliers: %w", err)
	}
	logs, err := s.reconRepo.FindAll(ctx)
	if err != nil {
		return payout.Bundle{}, fmt.Errorf("failed to load reconciliation log: %w", err)
	}

	return payout.GenerateReports(orders, suppliers, logs, filters), nil
}

func (s *reportService) GenerateReports(ctx context.Context, q ReportQuery) (payout.Bundle, error) {
	return s.buildBundle(ctx, q)
}

// ExportWorkbook renders the report bundle into an xlsx workbook and returns
// its bytes along with a suggested file name.
func (s *reportService) ExportWorkbook(ctx context.Context, q ReportQuery) ([]byte, string, error) {
	bundle, err := s.buildBundle(ctx, q)
	if err != nil {
		return nil, "", err
	}

	wb, err := export.Workbook(bundle)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build workbook: %w", err)
	}
	defer wb.Close()

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	name := fmt.Sprintf("payout-reports-%s.xlsx", time.Now().Format("20060102-150405"))
	return buf.Bytes(), name, nil
}
