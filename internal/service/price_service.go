package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendorpay/backend/internal/model"
	"vendorpay/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreatePriceEntryRequest struct {
	SupplierID     string `json:"supplier_id" binding:"required"`
	ProductName    string `json:"product_name" binding:"required"`
	Currency       string `json:"currency"`
	PriceBeforeGST string `json:"price_before_gst" binding:"required"` // Decimal string, e.g. "84.75"
	GSTRate        string `json:"gst_rate"`                            // Decimal string, e.g. "0.18"
	FinalPrice     string `json:"final_price" binding:"required"`
	HSNCode        string `json:"hsn_code"`
	EffectiveFrom  string `json:"effective_from" binding:"required"` // YYYY-MM-DD
	EffectiveTo    string `json:"effective_to"`                      // YYYY-MM-DD, nullable
}

type UpdatePriceEntryRequest struct {
	ProductName    string `json:"product_name" binding:"required"`
	Currency       string `json:"currency"`
	PriceBeforeGST string `json:"price_before_gst" binding:"required"`
	GSTRate        string `json:"gst_rate"`
	FinalPrice     string `json:"final_price" binding:"required"`
	HSNCode        string `json:"hsn_code"`
	EffectiveFrom  string `json:"effective_from" binding:"required"`
	EffectiveTo    string `json:"effective_to"`
}

type PriceEntryResponse struct {
	ID             string  `json:"id"`
	SupplierID     string  `json:"supplier_id"`
	ProductName    string  `json:"product_name"`
	Currency       string  `json:"currency"`
	PriceBeforeGST string  `json:"price_before_gst"`
	GSTRate        string  `json:"gst_rate"`
	FinalPrice     string  `json:"final_price"`
	HSNCode        string  `json:"hsn_code"`
	EffectiveFrom  string  `json:"effective_from"`
	EffectiveTo    *string `json:"effective_to"`
	CreatedAt      string  `json:"created_at"`
}

// --- Interface ---

type PriceService interface {
	GetPriceEntries(ctx context.Context, supplierID string, page, limit int) ([]PriceEntryResponse, int64, error)
	CreatePriceEntry(ctx context.Context, req CreatePriceEntryRequest) (PriceEntryResponse, error)
	UpdatePriceEntry(ctx context.Context, id string, req UpdatePriceEntryRequest) (PriceEntryResponse, error)
	DeletePriceEntry(ctx context.Context, id string) error
}

type priceService struct {
	priceRepo    repository.PriceEntryRepository
	supplierRepo repository.SupplierRepository
}

func NewPriceService(priceRepo repository.PriceEntryRepository, supplierRepo repository.SupplierRepository) PriceService {
	return &priceService{priceRepo: priceRepo, supplierRepo: supplierRepo}
}

// --- Helpers ---

func parsePriceFields(beforeStr, rateStr, finalStr, fromStr, toStr string) (before, rate, final decimal.Decimal, from time.Time, to *time.Time, err error) {
	before, err = decimal.NewFromString(beforeStr)
	if err != nil {
		err = fmt.Errorf("invalid price_before_gst value: %w", err)
		return
	}

	rate = decimal.Zero
	if rateStr != "" {
		rate, err = decimal.NewFromString(rateStr)
		if err != nil {
			err = fmt.Errorf("invalid gst_rate value: %w", err)
			return
		}
	}

	final, err = decimal.NewFromString(finalStr)
	if err != nil {
		err = fmt.Errorf("invalid final_price value: %w", err)
		return
	}

	from, err = time.Parse("2006-01-02", fromStr)
	if err != nil {
		err = fmt.Errorf("invalid effective_from date format (expected YYYY-MM-DD): %w", err)
		return
	}

	if toStr != "" {
		var t time.Time
		t, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			err = fmt.Errorf("invalid effective_to date format (expected YYYY-MM-DD): %w", err)
			return
		}
		to = &t
	}

	return
}

func toPriceEntryResponse(e model.PriceEntry) PriceEntryResponse {
	resp := PriceEntryResponse{
		ID:             e.ID.String(),
		SupplierID:     e.SupplierID.String(),
		ProductName:    e.ProductName,
		Currency:       e.Currency,
		PriceBeforeGST: e.PriceBeforeGST.StringFixed(2),
		GSTRate:        e.GSTRate.StringFixed(4),
		FinalPrice:     e.FinalPrice.StringFixed(2),
		HSNCode:        e.HSNCode,
		EffectiveFrom:  e.EffectiveFrom.Format("2006-01-02"),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.EffectiveTo != nil {
		s := e.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &s
	}
	return resp
}

// --- Implementation ---

func (s *priceService) GetPriceEntries(ctx context.Context, supplierID string, page, limit int) ([]PriceEntryResponse, int64, error) {
	var filter *uuid.UUID
	if supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid supplier id: %w", err)
		}
		filter = &id
	}

	entries, total, err := s.priceRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch price entries: %w", err)
	}

	res := make([]PriceEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toPriceEntryResponse(e))
	}
	return res, total, nil
}

// CreatePriceEntry accepts overlapping validity windows for the same
// (supplier, product, currency); the resolver disambiguates by picking the
// entry with the latest effective_from not after the reference date.
func (s *priceService) CreatePriceEntry(ctx context.Context, req CreatePriceEntryRequest) (PriceEntryResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return PriceEntryResponse{}, fmt.Errorf("invalid supplier id: %w", err)
	}

	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PriceEntryResponse{}, fmt.Errorf("supplier not found")
		}
		return PriceEntryResponse{}, fmt.Errorf("failed to fetch supplier: %w", err)
	}

	before, rate, final, from, to, err := parsePriceFields(req.PriceBeforeGST, req.GSTRate, req.FinalPrice, req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return PriceEntryResponse{}, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	entry := model.PriceEntry{
		SupplierID:     supplierID,
		ProductName:    req.ProductName,
		Currency:       currency,
		PriceBeforeGST: before,
		GSTRate:        rate,
		FinalPrice:     final,
		HSNCode:        req.HSNCode,
		EffectiveFrom:  from,
		EffectiveTo:    to,
	}

	if err := s.priceRepo.Create(ctx, &entry); err != nil {
		return PriceEntryResponse{}, fmt.Errorf("failed to create price entry: %w", err)
	}

	return toPriceEntryResponse(entry), nil
}

func (s *priceService) UpdatePriceEntry(ctx context.Context, id string, req UpdatePriceEntryRequest) (PriceEntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return PriceEntryResponse{}, fmt.Errorf("invalid price entry id: %w", err)
	}

	entry, err := s.priceRepo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PriceEntryResponse{}, fmt.Errorf("price entry not found")
		}
		return PriceEntryResponse{}, fmt.Errorf("failed to fetch price entry: %w", err)
	}

	before, rate, final, from, to, err := parsePriceFields(req.PriceBeforeGST, req.GSTRate, req.FinalPrice, req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return PriceEntryResponse{}, err
	}

	entry.ProductName = req.ProductName
	if req.Currency != "" {
		entry.Currency = req.Currency
	}
	entry.PriceBeforeGST = before
	entry.GSTRate = rate
	entry.FinalPrice = final
	entry.HSNCode = req.HSNCode
	entry.EffectiveFrom = from
	entry.EffectiveTo = to

	if err := s.priceRepo.Update(ctx, entry); err != nil {
		return PriceEntryResponse{}, fmt.Errorf("failed to update price entry: %w", err)
	}

	return toPriceEntryResponse(*entry), nil
}

func (s *priceService) DeletePriceEntry(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid price entry id: %w", err)
	}

	if _, err := s.priceRepo.FindByID(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("price entry not found")
		}
		return fmt.Errorf("failed to fetch price entry: %w", err)
	}

	return s.priceRepo.Delete(ctx, entryID)
}
