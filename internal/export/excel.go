// Package export renders report bundles into xlsx workbooks.
package export

import (
	"fmt"

	"vendorpay/backend/internal/payout"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSupplierSummary = "Supplier Summary"
	sheetPayoutSheet     = "Payout Sheet"
	sheetCancelled       = "Cancelled Orders"
	sheetReconciliation  = "Reconciliation Log"
	sheetExceptions      = "Exceptions"
	sheetLineDetails     = "Line Details"
)

// Workbook builds a six-sheet xlsx workbook from one report bundle. The caller
// owns the returned file and must Close it.
func Workbook(bundle payout.Bundle) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSupplierSummary(f, bundle); err != nil {
		return nil, err
	}
	if err := writePayoutSheet(f, bundle); err != nil {
		return nil, err
	}
	if err := writeCancelledOrders(f, bundle); err != nil {
		return nil, err
	}
	if err := writeReconciliationLog(f, bundle); err != nil {
		return nil, err
	}
	if err := writeExceptions(f, bundle); err != nil {
		return nil, err
	}
	if err := writeLineDetails(f, bundle); err != nil {
		return nil, err
	}

	// Drop the default sheet and open on the summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	index, err := f.GetSheetIndex(sheetSupplierSummary)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	return f, nil
}

// newSheet creates a sheet and writes its header row.
func newSheet(f *excelize.File, name string, header []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return f.SetSheetRow(name, "A1", &header)
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeSupplierSummary(f *excelize.File, bundle payout.Bundle) error {
	header := []interface{}{"Supplier", "Currency", "Total Orders", "Delivered", "RTS", "Total Amount"}
	if err := newSheet(f, sheetSupplierSummary, header); err != nil {
		return err
	}
	for i, row := range bundle.SupplierSummary {
		values := []interface{}{
			row.SupplierName,
			row.Currency,
			row.TotalOrders,
			row.DeliveredOrders,
			row.RTSOrders,
			row.TotalAmount.StringFixed(2),
		}
		if err := setRow(f, sheetSupplierSummary, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writePayoutSheet(f *excelize.File, bundle payout.Bundle) error {
	header := []interface{}{"AWB", "Supplier", "Courier", "HSN", "Product", "Qty", "Unit Price", "Delivered Date", "Status"}
	if err := newSheet(f, sheetPayoutSheet, header); err != nil {
		return err
	}
	for i, row := range bundle.PayoutSheet {
		values := []interface{}{
			row.AWB,
			row.SupplierName,
			row.Courier,
			row.HSN,
			row.ProductName,
			row.Qty,
			row.UnitPrice.StringFixed(2),
			row.DeliveredDate,
			string(row.Status),
		}
		if err := setRow(f, sheetPayoutSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeCancelledOrders(f *excelize.File, bundle payout.Bundle) error {
	header := []interface{}{"AWB", "Supplier", "Product", "Qty", "Status", "Channel Order Date", "Order Date"}
	if err := newSheet(f, sheetCancelled, header); err != nil {
		return err
	}
	for i, row := range bundle.CancelledOrders {
		values := []interface{}{
			row.AWB,
			row.SupplierName,
			row.ProductName,
			row.Qty,
			string(row.Status),
			row.ChannelOrderDate,
			row.OrderDate,
		}
		if err := setRow(f, sheetCancelled, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeReconciliationLog(f *excelize.File, bundle payout.Bundle) error {
	header := []interface{}{"AWB", "Previous Status", "New Status", "Impact", "Note", "Changed At"}
	if err := newSheet(f, sheetReconciliation, header); err != nil {
		return err
	}
	for i, entry := range bundle.ReconciliationLog {
		values := []interface{}{
			entry.AWB,
			string(entry.PreviousStatus),
			string(entry.NewStatus),
			entry.Impact.StringFixed(2),
			entry.Note,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, sheetReconciliation, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeExceptions(f *excelize.File, bundle payout.Bundle) error {
	header := []interface{}{"Row", "Type", "Description", "Order ID"}
	if err := newSheet(f, sheetExceptions, header); err != nil {
		return err
	}
	for i, ex := range bundle.Exceptions {
		values := []interface{}{
			ex.RowIndex,
			ex.Type,
			ex.Description,
			ex.OrderID.String(),
		}
		if err := setRow(f, sheetExceptions, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeLineDetails(f *excelize.File, bundle payout.Bundle) error {
	header := []interface{}{"AWB", "Supplier", "Product", "Qty", "Currency", "Status", "Unit Price", "Line Amount", "Basis Date"}
	if err := newSheet(f, sheetLineDetails, header); err != nil {
		return err
	}
	for i, row := range bundle.LineDetails {
		values := []interface{}{
			row.AWB,
			row.SupplierName,
			row.ProductName,
			row.Qty,
			row.Currency,
			string(row.Status),
			row.UnitPrice.StringFixed(2),
			row.LineAmount.StringFixed(2),
			row.BasisDate,
		}
		if err := setRow(f, sheetLineDetails, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
