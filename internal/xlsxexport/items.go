// Package xlsxexport renders payable line items as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"nfimport/internal/domain"
)

// SheetName is the only sheet of the workbook.
const SheetName = "Itens"

var header = []interface{}{
	"Item", "Código", "Descrição", "NCM", "CFOP", "Unidade",
	"Quantidade", "Valor Unitário", "Valor Total", "Desconto",
}

// WriteItems writes a workbook with a header row, one row per item and a
// closing total row to w.
func WriteItems(w io.Writer, items []domain.PayableLineItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsxexport: header: %w", err)
	}

	for i := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsxexport: %w", err)
		}
		row := itemRow(&items[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsxexport: row %d: %w", i+1, err)
		}
	}

	totalRow := len(items) + 2
	if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return fmt.Errorf("xlsxexport: total: %w", err)
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("I%d", totalRow), total(items).InexactFloat64()); err != nil {
		return fmt.Errorf("xlsxexport: total: %w", err)
	}

	// Built-in format 4 is "#,##0.00".
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}
	if err := f.SetColStyle(SheetName, "H:J", money); err != nil {
		return fmt.Errorf("xlsxexport: style: %w", err)
	}
	if err := f.SetColWidth(SheetName, "C", "C", 48); err != nil {
		return fmt.Errorf("xlsxexport: width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: write: %w", err)
	}
	return nil
}

func itemRow(it *domain.PayableLineItem) []interface{} {
	row := []interface{}{
		it.Sequence,
		deref(it.ProductCode),
		it.Description,
		deref(it.TaxClassificationCode),
		deref(it.OperationCode),
		deref(it.Unit),
		it.Quantity.InexactFloat64(),
		it.UnitValue.InexactFloat64(),
		it.TotalValue.InexactFloat64(),
		nil,
	}
	if it.DiscountValue != nil {
		row[9] = it.DiscountValue.Round(2).InexactFloat64()
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func total(items []domain.PayableLineItem) decimal.Decimal {
	sum := decimal.Zero
	for i := range items {
		sum = sum.Add(items[i].TotalValue)
	}
	return sum
}
