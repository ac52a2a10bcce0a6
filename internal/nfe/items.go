package nfe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// UnnamedProduct replaces a missing xProd so that the item is kept.
const UnnamedProduct = "Produto sem descrição"

// Item is one det entry of the invoice.
type Item struct {
	Sequence              int
	ProductCode           string
	Description           string
	TaxClassificationCode string
	OperationCode         string
	Unit                  string
	Quantity              decimal.Decimal
	UnitValue             decimal.Decimal
	TotalValue            decimal.Decimal
	Discount              *decimal.Decimal
}

// Sequence conventions for the nItem attribute of a det opening tag, tried in
// order: double quotes, single quotes, unquoted or mismatched quoting, and
// finally any separator at all ("nItem:7").
var sequencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bnItem\s*=\s*"\s*(\d+)\s*"`),
	regexp.MustCompile(`(?i)\bnItem\s*=\s*'\s*(\d+)\s*'`),
	regexp.MustCompile(`(?i)\bnItem\s*=\s*["']?\s*(\d+)`),
	regexp.MustCompile(`(?i)\bnItem\W{0,4}(\d+)`),
}

// ExtractItems returns the invoice line items in document order. Every det
// container becomes an item, whatever quoting its nItem attribute uses; a
// container without a readable nItem takes its position in the document. A
// document without det containers yields an empty list.
func ExtractItems(raw string) []Item {
	matches := elementPattern("det").FindAllStringSubmatch(raw, -1)
	items := make([]Item, 0, len(matches))
	for i, m := range matches {
		seq, ok := sequenceOf(openingTag(m[0]))
		if !ok {
			seq = i + 1
		}
		items = append(items, buildItem(seq, Scope(m[1])))
	}
	return items
}

func openingTag(element string) string {
	if end := strings.IndexByte(element, '>'); end >= 0 {
		return element[:end+1]
	}
	return element
}

func sequenceOf(tag string) (int, bool) {
	for _, re := range sequencePatterns {
		m := re.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

func buildItem(seq int, det Scope) Item {
	prod, ok := det.Section("prod")
	if !ok {
		prod = det
	}

	item := Item{
		Sequence:   seq,
		Quantity:   decimal.NewFromInt(1),
		UnitValue:  decimal.Zero,
		TotalValue: decimal.Zero,
	}
	item.ProductCode, _ = prod.Scalar("cProd")
	item.TaxClassificationCode, _ = prod.Scalar("NCM")
	item.OperationCode, _ = prod.Scalar("CFOP")
	item.Unit, _ = prod.first("uCom", "uTrib")

	if v, ok := prod.Scalar("xProd"); ok {
		item.Description = v
	} else {
		item.Description = UnnamedProduct
	}
	if q := firstDecimal(prod, "qCom", "qTrib"); q != nil {
		item.Quantity = *q
	}
	if u := firstDecimal(prod, "vUnCom", "vUnTrib"); u != nil {
		item.UnitValue = *u
	}
	if v := decimalField(prod, "vProd"); v != nil {
		item.TotalValue = *v
	}
	if d := decimalField(prod, "vDesc"); d != nil && d.IsPositive() {
		item.Discount = d
	}
	return item
}

func firstDecimal(s Scope, tags ...string) *decimal.Decimal {
	for _, tag := range tags {
		if d := decimalField(s, tag); d != nil {
			return d
		}
	}
	return nil
}
