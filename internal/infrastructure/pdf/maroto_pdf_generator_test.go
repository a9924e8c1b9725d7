package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

var pdfMagic = []byte("%PDF")

func TestBudgetPDF(t *testing.T) {
	b := &entity.Budget{
		ID:           "b-1234567890",
		CreationDate: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		CustomerName: "Maria",
		VehiclePlate: "ABC1D23",
		Services: []entity.BudgetService{
			{ID: "s1", Description: "Pintura porta", Value: decimal.RequireFromString("800")},
			{ID: "s2", Description: "Polimento", Value: decimal.RequireFromString("250")},
		},
		TotalValue: decimal.RequireFromString("1050"),
		Status:     entity.BudgetPending,
	}
	out, err := NewMarotoPDFGenerator().BudgetPDF(context.Background(), &entity.WorkshopProfile{Name: "Funilaria Silva"}, b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, pdfMagic))
}

func TestInvoicePDF(t *testing.T) {
	inv := &entity.IssuedInvoice{
		Number:       3,
		DateIssued:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		CarPlate:     "ABC1D23",
		CustomerName: "Maria",
		TotalValue:   decimal.RequireFromString("1050"),
		Digest:       "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	}
	car := &entity.Car{Brand: "Fiat", Model: "Uno", Year: 2015}

	out, err := NewMarotoPDFGenerator().InvoicePDF(context.Background(), nil, inv, car)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, pdfMagic))
}

func TestPaymentReceiptPDF(t *testing.T) {
	p := &entity.PaymentRecord{
		ID:           "p1",
		EmployeeName: "Carlos",
		Date:         time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Type:         entity.PaymentAdvance,
		Amount:       decimal.RequireFromString("300"),
		Notes:        "Adiantamento",
	}
	out, err := NewMarotoPDFGenerator().PaymentReceiptPDF(context.Background(), nil, p, &entity.Employee{Role: entity.RolePainter})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, pdfMagic))
}

func TestNilDocuments(t *testing.T) {
	g := NewMarotoPDFGenerator()
	_, err := g.BudgetPDF(context.Background(), nil, nil)
	assert.Error(t, err)
	_, err = g.InvoicePDF(context.Background(), nil, nil, nil)
	assert.Error(t, err)
	_, err = g.PaymentReceiptPDF(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}

func TestLogoComponent(t *testing.T) {
	_, ok := logoComponent("")
	assert.False(t, ok)
	_, ok = logoComponent("data:text/plain;base64,aG9sYQ==")
	assert.False(t, ok)
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, splitEvery("abcdefg", 3))
	assert.Nil(t, splitEvery("", 3))
}
