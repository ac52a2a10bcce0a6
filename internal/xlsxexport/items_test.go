package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nfimport/internal/domain"
	"nfimport/internal/xlsxexport"
)

func TestWriteItems(t *testing.T) {
	code := "CIM50"
	discount := decimal.RequireFromString("10")
	items := []domain.PayableLineItem{
		{Sequence: 1, ProductCode: &code, Description: "Cimento", Quantity: decimal.NewFromInt(20),
			UnitValue: decimal.RequireFromString("38.5"), TotalValue: decimal.RequireFromString("770"), DiscountValue: &discount},
		{Sequence: 2, Description: "Areia", Quantity: decimal.NewFromInt(1),
			UnitValue: decimal.RequireFromString("0.1"), TotalValue: decimal.RequireFromString("0.2")},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteItems(&buf, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Item", rows[0][0])
	assert.Equal(t, "Descrição", rows[0][2])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "CIM50", rows[1][1])
	assert.Equal(t, "770", rows[1][8])
	assert.Equal(t, "10", rows[1][9])
	assert.Equal(t, "Areia", rows[2][2])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "770.2", rows[3][8])
}

func TestWriteItems_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteItems(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}
