// Package nfe reads Brazilian electronic invoices (NF-e XML) into the fields a
// payable record needs. It is a tolerant text scanner, not a schema binder:
// unknown structure is skipped and missing fields are reported as absent.
package nfe

import (
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// KeyLength is the number of digits in an NF-e access key.
const KeyLength = 44

// ErrUnparseable is returned when the text carries no recognizable invoice structure.
var ErrUnparseable = errors.New("nfe: no invoice structure found")

// Invoice is the normalized content of one NF-e. Text fields are empty and
// pointer fields nil when the document does not carry them.
type Invoice struct {
	InvoiceKey      string
	Number          string
	Series          string
	IssueDate       *time.Time
	OperationNature string
	Supplier        Party
	Totals          Totals
	Items           []Item
}

// Party identifies the invoice issuer.
type Party struct {
	TaxID     string
	LegalName string
	TradeName string
}

// Totals mirrors the ICMSTot/ISSQNtot totals of the invoice.
type Totals struct {
	Gross    *decimal.Decimal
	Products *decimal.Decimal
	Services *decimal.Decimal
	Freight  *decimal.Decimal
	Discount *decimal.Decimal
}

var structurePattern = regexp.MustCompile(`(?i)<(?:[\w.-]+:)?(?:nfeProc|NFe|infNFe|ide|emit|total)[\s>]`)

// Parse extracts the header fields and line items from raw NF-e text.
func Parse(raw string) (*Invoice, error) {
	if !structurePattern.MatchString(raw) {
		return nil, ErrUnparseable
	}

	doc := Scope(raw)
	inf := doc
	if s, ok := doc.Section("infNFe"); ok {
		inf = s
	}

	inv := &Invoice{
		InvoiceKey: invoiceKey(doc),
		Supplier:   issuer(inf),
		Totals:     totals(inf),
		Items:      ExtractItems(raw),
	}

	ide, _ := inf.Section("ide")
	inv.Number, _ = ide.Scalar("nNF")
	inv.Series, _ = ide.Scalar("serie")
	inv.OperationNature, _ = ide.Scalar("natOp")
	if v, ok := ide.first("dhEmi", "dEmi"); ok {
		inv.IssueDate = ParseDate(v)
	}

	return inv, nil
}

// invoiceKey prefers chNFe and falls back to the infNFe Id attribute ("NFe" + 44 digits).
// A candidate that is not exactly KeyLength digits is ignored.
func invoiceKey(doc Scope) string {
	if v, ok := doc.Scalar("chNFe"); ok {
		if key := DigitsOnly(v); len(key) == KeyLength {
			return key
		}
	}
	if v, ok := doc.Attr("infNFe", "Id"); ok {
		if key := DigitsOnly(v); len(key) == KeyLength {
			return key
		}
	}
	return ""
}

func issuer(inf Scope) Party {
	emit, ok := inf.Section("emit")
	if !ok {
		return Party{}
	}
	var p Party
	if v, ok := emit.first("CNPJ", "CPF"); ok {
		p.TaxID = DigitsOnly(v)
	}
	p.LegalName, _ = emit.Scalar("xNome")
	p.TradeName, _ = emit.Scalar("xFant")
	return p
}

func totals(inf Scope) Totals {
	total, ok := inf.Section("total")
	if !ok {
		return Totals{}
	}

	var t Totals
	if icms, ok := total.Section("ICMSTot"); ok {
		t.Gross = decimalField(icms, "vNF")
		t.Products = decimalField(icms, "vProd")
		t.Freight = decimalField(icms, "vFrete")
		t.Discount = decimalField(icms, "vDesc")
	}
	if iss, ok := total.Section("ISSQNtot"); ok {
		t.Services = decimalField(iss, "vServ")
	}
	if t.Gross == nil {
		t.Gross = decimalField(total, "vNF")
	}
	return t
}

func decimalField(s Scope, tag string) *decimal.Decimal {
	v, ok := s.Scalar(tag)
	if !ok {
		return nil
	}
	return ParseDecimal(v)
}
