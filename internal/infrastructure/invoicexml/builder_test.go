package invoicexml

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

func sample() (*entity.WorkshopProfile, *entity.IssuedInvoice, *entity.Car) {
	profile := &entity.WorkshopProfile{Name: "Funilaria Silva", TaxID: "12.345.678/0001-90"}
	inv := &entity.IssuedInvoice{
		ID:           "i1",
		Number:       7,
		DateIssued:   time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC),
		CarPlate:     "ABC1D23",
		CustomerName: "Maria & Filhos",
		Description:  "Funilaria e pintura",
		TotalValue:   decimal.RequireFromString("1850.5"),
		Type:         entity.InvoiceIncome,
	}
	car := &entity.Car{Brand: "Fiat", Model: "Uno", Year: 2015}
	return profile, inv, car
}

func TestBuild(t *testing.T) {
	xmlDoc, digest, err := NewBuilder().Build(sample())
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(xmlDoc))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "NotaServico", root.Tag)
	assert.Equal(t, "7", root.FindElement("Numero").Text())
	assert.Equal(t, "1850.50", root.FindElement("Servico/ValorTotal").Text())
	assert.Equal(t, "Maria & Filhos", root.FindElement("Tomador/Nome").Text())
	assert.Equal(t, "Uno", root.FindElement("Veiculo/Modelo").Text())

	again, err := Digest(xmlDoc)
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

func TestBuild_DigestCambiaConElTotal(t *testing.T) {
	profile, inv, car := sample()
	_, first, err := NewBuilder().Build(profile, inv, car)
	require.NoError(t, err)

	inv.TotalValue = decimal.RequireFromString("1850.51")
	_, second, err := NewBuilder().Build(profile, inv, car)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDigest_IgnoraOrdenDeAtributos(t *testing.T) {
	a, err := Digest([]byte(`<a x="1" y="2"><b/></a>`))
	require.NoError(t, err)
	b, err := Digest([]byte(`<a y="2" x="1"><b></b></a>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuild_SinNota(t *testing.T) {
	_, _, err := NewBuilder().Build(nil, nil, nil)
	assert.Error(t, err)
}
