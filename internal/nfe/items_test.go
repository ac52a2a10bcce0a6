package nfe_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfimport/internal/nfe"
)

const itemBody = `<prod><cProd>P%s</cProd><xProd>Produto %s</xProd><NCM>12345678</NCM><CFOP>5102</CFOP>` +
	`<uCom>UN</uCom><qCom>2</qCom><vUnCom>5.25</vUnCom><vProd>10.50</vProd></prod>`

func det(open, n string) string {
	return open + strings.ReplaceAll(itemBody, "%s", n) + `</det>`
}

func TestExtractItems_AttributeQuoting(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "double quoted",
			raw:  det(`<det nItem="1">`, "1") + det(`<det nItem="2">`, "2") + det(`<det nItem="3">`, "3"),
		},
		{
			name: "single quoted",
			raw:  det(`<det nItem='1'>`, "1") + det(`<det nItem='2'>`, "2") + det(`<det nItem='3'>`, "3"),
		},
		{
			name: "unquoted",
			raw:  det(`<det nItem=1>`, "1") + det(`<det nItem=2 >`, "2") + det(`<det nItem=3>`, "3"),
		},
		{
			name: "mismatched quotes and spacing",
			raw:  det(`<det nItem = "1'>`, "1") + det(`<det  nItem="2'>`, "2") + det(`<det nItem='3">`, "3"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := nfe.ExtractItems("<NFe><infNFe>" + tt.raw + "</infNFe></NFe>")

			require.Len(t, items, 3)
			for i, item := range items {
				n := []string{"1", "2", "3"}[i]
				assert.Equal(t, i+1, item.Sequence)
				assert.Equal(t, "P"+n, item.ProductCode)
				assert.Equal(t, "Produto "+n, item.Description)
				assert.Equal(t, "12345678", item.TaxClassificationCode)
				assert.Equal(t, "5102", item.OperationCode)
				assert.Equal(t, "UN", item.Unit)
				assert.True(t, decimal.NewFromInt(2).Equal(item.Quantity))
				assert.True(t, decimal.RequireFromString("5.25").Equal(item.UnitValue))
				assert.True(t, decimal.RequireFromString("10.50").Equal(item.TotalValue))
				assert.Nil(t, item.Discount)
			}
		})
	}
}

func TestExtractItems_MixedQuotingKeepsEveryItem(t *testing.T) {
	raw := det(`<det nItem='1'>`, "A") + det(`<det nItem="2">`, "B") + det(`<det nItem=3>`, "C")

	items := nfe.ExtractItems(raw)

	require.Len(t, items, 3)
	for i, desc := range []string{"Produto A", "Produto B", "Produto C"} {
		assert.Equal(t, i+1, items[i].Sequence)
		assert.Equal(t, desc, items[i].Description)
	}
}

func TestExtractItems_NumberedAndBareContainers(t *testing.T) {
	raw := det(`<det nItem="1">`, "a") + det(`<det>`, "b") + det(`<det nItem='5'>`, "c")

	items := nfe.ExtractItems(raw)

	require.Len(t, items, 3)
	assert.Equal(t, []int{1, 2, 5}, []int{items[0].Sequence, items[1].Sequence, items[2].Sequence})
	assert.Equal(t, "Produto b", items[1].Description)
}

func TestExtractItems_FallbackUsesOccurrenceOrder(t *testing.T) {
	raw := det(`<det>`, "a") + det(`<det  >`, "b") + det(`<det>`, "c")

	items := nfe.ExtractItems(raw)

	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Sequence)
	assert.Equal(t, 2, items[1].Sequence)
	assert.Equal(t, 3, items[2].Sequence)
	assert.Equal(t, "Produto c", items[2].Description)
}

func TestExtractItems_FallbackPrefersLiteralSequence(t *testing.T) {
	raw := det(`<det nItem:"7">`, "x") + det(`<det>`, "y")

	items := nfe.ExtractItems(raw)

	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].Sequence)
	assert.Equal(t, 2, items[1].Sequence)
}

func TestExtractItems_PreservesDocumentOrder(t *testing.T) {
	raw := det(`<det nItem="3">`, "c") + det(`<det nItem="1">`, "a") + det(`<det nItem="2">`, "b")

	items := nfe.ExtractItems(raw)

	require.Len(t, items, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{items[0].Sequence, items[1].Sequence, items[2].Sequence})
}

func TestExtractItems_FieldFallbacks(t *testing.T) {
	raw := `<det nItem="1"><prod>
		<cProd>X</cProd>
		<uTrib>KG</uTrib><qTrib>12,5</qTrib><vUnTrib>2.00</vUnTrib>
		<vDesc>0.00</vDesc>
	</prod></det>`

	items := nfe.ExtractItems(raw)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, nfe.UnnamedProduct, item.Description)
	assert.Equal(t, "KG", item.Unit)
	assert.True(t, decimal.RequireFromString("12.5").Equal(item.Quantity))
	assert.True(t, decimal.RequireFromString("2").Equal(item.UnitValue))
	assert.True(t, decimal.Zero.Equal(item.TotalValue))
	assert.Nil(t, item.Discount, "zero discount is treated as absent")
	assert.Empty(t, item.TaxClassificationCode)
}

func TestExtractItems_Defaults(t *testing.T) {
	items := nfe.ExtractItems(`<det nItem="1"><prod><xProd>Servico avulso</xProd></prod></det>`)

	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(1).Equal(items[0].Quantity))
	assert.True(t, decimal.Zero.Equal(items[0].UnitValue))
	assert.Empty(t, items[0].Unit)
}

func TestExtractItems_PositiveDiscountKept(t *testing.T) {
	items := nfe.ExtractItems(readFixture(t, "nfe_completa.xml"))

	require.Len(t, items, 2)
	require.NotNil(t, items[0].Discount)
	assert.True(t, decimal.RequireFromString("10.00").Equal(*items[0].Discount))
	assert.Equal(t, "SC", items[0].Unit, "commercial unit wins over taxable unit")
	assert.True(t, decimal.NewFromInt(20).Equal(items[0].Quantity))
	assert.Equal(t, "Areia media & lavada", items[1].Description)
	assert.Nil(t, items[1].Discount)
}

func TestExtractItems_NoContainers(t *testing.T) {
	raw := `<NFe><infNFe><pag><detPag><tPag>01</tPag></detPag></pag></infNFe></NFe>`

	items := nfe.ExtractItems(raw)

	assert.Empty(t, items)
}

func TestExtractItems_ItemWithoutProdSection(t *testing.T) {
	items := nfe.ExtractItems(`<det nItem="4"><xProd>Solto</xProd><vProd>3.00</vProd></det>`)

	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Sequence)
	assert.Equal(t, "Solto", items[0].Description)
	assert.True(t, decimal.RequireFromString("3").Equal(items[0].TotalValue))
}
