package service_test

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfimport/internal/config"
	"nfimport/internal/domain"
)

type invoiceDoc struct {
	key       string
	number    string
	taxID     string
	legalName string
	tradeName string
	issued    string
	gross     string
	items     int
}

func (d invoiceDoc) xml() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><nfeProc versao="4.00"><NFe><infNFe versao="4.00"`)
	if d.key != "" {
		fmt.Fprintf(&b, ` Id="NFe%s"`, d.key)
	}
	b.WriteString(`><ide><natOp>Venda</natOp><serie>1</serie>`)
	if d.number != "" {
		fmt.Fprintf(&b, `<nNF>%s</nNF>`, d.number)
	}
	if d.issued != "" {
		fmt.Fprintf(&b, `<dhEmi>%s</dhEmi>`, d.issued)
	}
	b.WriteString(`</ide><emit>`)
	if d.taxID != "" {
		fmt.Fprintf(&b, `<CNPJ>%s</CNPJ>`, d.taxID)
	}
	if d.legalName != "" {
		fmt.Fprintf(&b, `<xNome>%s</xNome>`, d.legalName)
	}
	if d.tradeName != "" {
		fmt.Fprintf(&b, `<xFant>%s</xFant>`, d.tradeName)
	}
	b.WriteString(`</emit>`)
	for i := 1; i <= d.items; i++ {
		fmt.Fprintf(&b, `<det nItem="%d"><prod><cProd>%03d</cProd><xProd>Item %d</xProd><NCM>25232910</NCM>`+
			`<CFOP>5102</CFOP><uCom>UN</uCom><qCom>1.0000</qCom><vUnCom>10.00</vUnCom><vProd>10.00</vProd></prod></det>`,
			i, i, i)
	}
	b.WriteString(`<total><ICMSTot>`)
	if d.gross != "" {
		fmt.Fprintf(&b, `<vNF>%s</vNF>`, d.gross)
	}
	b.WriteString(`</ICMSTot></total></infNFe></NFe></nfeProc>`)
	return b.String()
}

const (
	testKey   = "35240112345678000190550010000012341000012345"
	testTaxID = "12345678000190"
)

func completeDoc() invoiceDoc {
	return invoiceDoc{
		key:       testKey,
		number:    "1234",
		taxID:     testTaxID,
		legalName: "Materiais Silva LTDA",
		tradeName: "Casa Silva",
		issued:    "2024-01-01T10:30:00-03:00",
		gross:     "1234.56",
		items:     3,
	}
}

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		DefaultCategory: "fornecedores",
		DueDays:         30,
		FormField:       "xml",
	}
}

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "sa-east-1",
		Bucket:        "test-bucket",
		PresignExpiry: 3600,
	}
}

// assignPayableID mimics the repository assigning the primary key on insert.
func assignPayableID(id uuid.UUID) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*domain.PayableAccount).ID = id
	}
}
