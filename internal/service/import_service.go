package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"vendorpay/backend/internal/model"
	"vendorpay/backend/internal/payout"
	"vendorpay/backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColumnMapping maps logical field names (payout.Field*) to the column
// headers of the uploaded export file.
type ColumnMapping map[string]string

type ImportSummary struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Imported int       `json:"imported"`
}

// ImportService ingests courier/fulfillment order exports. Value cleaning is
// best-effort and never rejects a row; only structural problems (empty file,
// ragged rows) fail the upload.
type ImportService interface {
	ImportOrders(ctx context.Context, supplierID string, mapping ColumnMapping, file io.Reader) (ImportSummary, error)
}

type importService struct {
	orderRepo    repository.OrderRepository
	supplierRepo repository.SupplierRepository
	txManager    repository.TransactionManager
}

func NewImportService(orderRepo repository.OrderRepository, supplierRepo repository.SupplierRepository, txManager repository.TransactionManager) ImportService {
	return &importService{orderRepo: orderRepo, supplierRepo: supplierRepo, txManager: txManager}
}

// canonicalDate reads a normalized date value back into a time, returning nil
// for anything the normalizer left as a raw string.
func canonicalDate(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func (s *importService) ImportOrders(ctx context.Context, supplierID string, mapping ColumnMapping, file io.Reader) (ImportSummary, error) {
	sid, err := uuid.Parse(supplierID)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("invalid supplier id: %w", err)
	}

	if _, err := s.supplierRepo.FindByID(ctx, sid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ImportSummary{}, fmt.Errorf("supplier not found")
		}
		return ImportSummary{}, fmt.Errorf("failed to fetch supplier: %w", err)
	}

	if len(mapping) == 0 {
		return ImportSummary{}, fmt.Errorf("column mapping is required")
	}

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return ImportSummary{}, fmt.Errorf("import file is empty")
	}
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to read header row: %w", err)
	}

	batchID := uuid.New()
	var orders []model.Order

	for line := 2; ; line++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged rows are a structural failure, not a value problem.
			return ImportSummary{}, fmt.Errorf("malformed row at line %d: %w", line, err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = cells[i]
		}

		record := payout.NormalizeRow(mapping, row)

		qty, err := strconv.Atoi(record[payout.FieldQty])
		if err != nil {
			qty = 1
		}

		orders = append(orders, model.Order{
			ImportBatchID:    batchID,
			AWB:              record[payout.FieldAWB],
			SupplierID:       sid,
			ProductName:      record[payout.FieldProduct],
			Qty:              qty,
			Currency:         record[payout.FieldCurrency],
			Status:           model.ParseOrderStatus(record[payout.FieldStatus]),
			StatusRaw:        record[payout.FieldStatus],
			Courier:          record[payout.FieldCourier],
			ChannelOrderDate: canonicalDate(record[payout.FieldChannelOrderDate]),
			OrderDate:        canonicalDate(record[payout.FieldOrderDate]),
			DeliveredDate:    canonicalDate(record[payout.FieldDeliveredDate]),
			RTSDate:          canonicalDate(record[payout.FieldRTSDate]),
			UnitPrice:        record[payout.FieldUnitPrice],
			LineAmount:       record[payout.FieldLineAmount],
			HSN:              record[payout.FieldHSN],
		})
	}

	if len(orders) == 0 {
		return ImportSummary{}, fmt.Errorf("import file contains no data rows")
	}

	// Currency may be absent from the mapping entirely; fall back to the
	// default the same way an absent column would.
	if _, mapped := mapping[payout.FieldCurrency]; !mapped {
		for i := range orders {
			orders[i].Currency = payout.DefaultCurrency
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.orderRepo.CreateBatch(txCtx, orders)
	})
	if err != nil {
		return ImportSummary{}, fmt.Errorf("failed to persist imported orders: %w", err)
	}

	return ImportSummary{BatchID: batchID, Imported: len(orders)}, nil
}
