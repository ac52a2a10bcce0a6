package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nfimport/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Separator is the field delimiter expected by spreadsheets in pt-BR locales,
// where the comma is the decimal separator.
const Separator = ';'

var columns = []string{
	"Item",
	"Código",
	"Descrição",
	"NCM",
	"CFOP",
	"Unidade",
	"Quantidade",
	"Valor Unitário",
	"Valor Total",
	"Desconto",
}

// Writer wraps csv.Writer for exporting payable line items.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes semicolon-separated CSV to w.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	return &Writer{csv: cw}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteItems writes one row per line item, in the order given.
func (w *Writer) WriteItems(items []domain.PayableLineItem) error {
	for i := range items {
		if err := w.csv.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func itemToRow(it *domain.PayableLineItem) []string {
	return []string{
		strconv.Itoa(it.Sequence),
		deref(it.ProductCode),
		it.Description,
		deref(it.TaxClassificationCode),
		deref(it.OperationCode),
		deref(it.Unit),
		FormatDecimal(it.Quantity, 4),
		FormatDecimal(it.UnitValue, 4),
		FormatDecimal(it.TotalValue, 2),
		formatOptional(it.DiscountValue),
	}
}

// FormatDecimal renders d with places fraction digits and a decimal comma.
func FormatDecimal(d decimal.Decimal, places int32) string {
	return strings.Replace(d.StringFixed(places), ".", ",", 1)
}

func formatOptional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return FormatDecimal(*d, 2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a payable description for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "itens"
	}
	return s
}

// BuildFilename returns {sanitized_description}_{YYYY-MM-DD}.csv.
func BuildFilename(description string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(description), now.Format("2006-01-02"))
}
