package nfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nfimport/internal/nfe"
)

func TestScope_Scalar(t *testing.T) {
	s := nfe.Scope(`<emit><xNome attr="x">  Loja &amp; Cia  </xNome><xFant><![CDATA[ A<B ]]></xFant><IE/><IM></IM></emit>`)

	v, ok := s.Scalar("xNome")
	assert.True(t, ok)
	assert.Equal(t, "Loja & Cia", v)

	v, ok = s.Scalar("XNOME")
	assert.True(t, ok, "tag names are case-insensitive")
	assert.Equal(t, "Loja & Cia", v)

	v, ok = s.Scalar("xFant")
	assert.True(t, ok)
	assert.Equal(t, "A<B", v)

	_, ok = s.Scalar("IE")
	assert.False(t, ok, "self-closing element has no value")

	_, ok = s.Scalar("IM")
	assert.False(t, ok, "empty element has no value")

	_, ok = s.Scalar("CNPJ")
	assert.False(t, ok)
}

func TestScope_ScalarDoesNotMatchLongerTagNames(t *testing.T) {
	s := nfe.Scope(`<vProdTotal>1.00</vProdTotal><vProd>2.00</vProd>`)

	v, ok := s.Scalar("vProd")

	assert.True(t, ok)
	assert.Equal(t, "2.00", v)
}

func TestScope_SectionConfinesLookups(t *testing.T) {
	s := nfe.Scope(`<dest><CNPJ>111</CNPJ></dest><emit><CNPJ>222</CNPJ></emit>`)

	emit, ok := s.Section("emit")
	assert.True(t, ok)
	v, _ := emit.Scalar("CNPJ")
	assert.Equal(t, "222", v)

	missing, ok := s.Section("transp")
	assert.False(t, ok)
	_, ok = missing.Scalar("CNPJ")
	assert.False(t, ok, "lookups in an absent section find nothing")
}

func TestScope_Elements(t *testing.T) {
	s := nfe.Scope(`<vol><qVol>1</qVol></vol><vol n="2"><qVol>2</qVol></vol>`)

	els := s.Elements("vol")

	assert.Len(t, els, 2)
	assert.Equal(t, nfe.Scope(`<vol n="2"><qVol>2</qVol></vol>`), els[1])
}

func TestScope_Attr(t *testing.T) {
	s := nfe.Scope(`<infNFe versao="4.00" Id="NFe123"><ide/></infNFe>`)

	v, ok := s.Attr("infNFe", "Id")
	assert.True(t, ok)
	assert.Equal(t, "NFe123", v)

	_, ok = s.Attr("infNFe", "xmlns")
	assert.False(t, ok)
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "12345678000190", nfe.DigitsOnly("12.345.678/0001-90"))
	assert.Equal(t, "", nfe.DigitsOnly("NFe"))
}
