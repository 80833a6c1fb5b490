package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"vendorpay/backend/internal/model"
	"vendorpay/backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateSupplierRequest struct {
	Name            string `json:"name" binding:"required"`
	OrderAccount    string `json:"order_account"`
	GSTIN           string `json:"gstin"`
	TradeName       string `json:"trade_name"`
	BillingAddress  string `json:"billing_address"`
	ShippingAddress string `json:"shipping_address"`
	ContactEmail    string `json:"contact_email"`
}

type UpdateSupplierRequest struct {
	Name            *string `json:"name"`
	OrderAccount    *string `json:"order_account"`
	GSTIN           *string `json:"gstin"`
	TradeName       *string `json:"trade_name"`
	BillingAddress  *string `json:"billing_address"`
	ShippingAddress *string `json:"shipping_address"`
	ContactEmail    *string `json:"contact_email"`
	IsActive        *bool   `json:"is_active"`
}

type SupplierResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	OrderAccount    string    `json:"order_account"`
	GSTIN           string    `json:"gstin"`
	TradeName       string    `json:"trade_name"`
	BillingAddress  string    `json:"billing_address"`
	ShippingAddress string    `json:"shipping_address"`
	ContactEmail    string    `json:"contact_email"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// --- Interface ---

type SupplierService interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (SupplierResponse, error)
	UpdateSupplier(ctx context.Context, id string, req UpdateSupplierRequest) (SupplierResponse, error)
	DeleteSupplier(ctx context.Context, id string) error
	GetSuppliers(ctx context.Context, search string, page, limit int) ([]SupplierResponse, int64, error)
	GetSupplierByID(ctx context.Context, id string) (SupplierResponse, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

// --- Implementation ---

func toSupplierResponse(s model.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:              s.ID,
		Name:            s.Name,
		OrderAccount:    s.OrderAccount,
		GSTIN:           s.GSTIN,
		TradeName:       s.TradeName,
		BillingAddress:  s.BillingAddress,
		ShippingAddress: s.ShippingAddress,
		ContactEmail:    s.ContactEmail,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (SupplierResponse, error) {
	if req.ContactEmail != "" {
		if _, err := mail.ParseAddress(req.ContactEmail); err != nil {
			return SupplierResponse{}, fmt.Errorf("invalid contact email: %w", err)
		}
	}

	if _, err := s.supplierRepo.FindByName(ctx, req.Name); err == nil {
		return SupplierResponse{}, fmt.Errorf("supplier '%s' already exists", req.Name)
	}

	supplier := model.Supplier{
		Name:            req.Name,
		OrderAccount:    req.OrderAccount,
		GSTIN:           req.GSTIN,
		TradeName:       req.TradeName,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
		ContactEmail:    req.ContactEmail,
		IsActive:        true,
	}

	if err := s.supplierRepo.Create(ctx, &supplier); err != nil {
		return SupplierResponse{}, fmt.Errorf("failed to create supplier: %w", err)
	}

	return toSupplierResponse(supplier), nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id string, req UpdateSupplierRequest) (SupplierResponse, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return SupplierResponse{}, fmt.Errorf("invalid supplier id: %w", err)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SupplierResponse{}, fmt.Errorf("supplier not found")
		}
		return SupplierResponse{}, fmt.Errorf("failed to fetch supplier: %w", err)
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.OrderAccount != nil {
		supplier.OrderAccount = *req.OrderAccount
	}
	if req.GSTIN != nil {
		supplier.GSTIN = *req.GSTIN
	}
	if req.TradeName != nil {
		supplier.TradeName = *req.TradeName
	}
	if req.BillingAddress != nil {
		supplier.BillingAddress = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		supplier.ShippingAddress = *req.ShippingAddress
	}
	if req.ContactEmail != nil {
		if *req.ContactEmail != "" {
			if _, err := mail.ParseAddress(*req.ContactEmail); err != nil {
				return SupplierResponse{}, fmt.Errorf("invalid contact email: %w", err)
			}
		}
		supplier.ContactEmail = *req.ContactEmail
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return SupplierResponse{}, fmt.Errorf("failed to update supplier: %w", err)
	}

	return toSupplierResponse(*supplier), nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id string) error {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid supplier id: %w", err)
	}

	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("supplier not found")
		}
		return fmt.Errorf("failed to fetch supplier: %w", err)
	}

	return s.supplierRepo.Delete(ctx, supplierID)
}

func (s *supplierService) GetSuppliers(ctx context.Context, search string, page, limit int) ([]SupplierResponse, int64, error) {
	suppliers, total, err := s.supplierRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}

	res := make([]SupplierResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		res = append(res, toSupplierResponse(supplier))
	}
	return res, total, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, id string) (SupplierResponse, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return SupplierResponse{}, fmt.Errorf("invalid supplier id: %w", err)
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SupplierResponse{}, fmt.Errorf("supplier not found")
		}
		return SupplierResponse{}, fmt.Errorf("failed to fetch supplier: %w", err)
	}

	return toSupplierResponse(*supplier), nil
}
