package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType sentido contable de la nota fiscal.
type InvoiceType string

const InvoiceIncome InvoiceType = "income"

// IssuedInvoice nota fiscal emitida para un carro concluido.
// Digest es el SHA-256 (hex) del XML canónico del documento.
type IssuedInvoice struct {
	ID           string          `json:"id"`
	Number       int             `json:"number"`
	DateIssued   time.Time       `json:"date_issued"`
	CarID        string          `json:"car_id"`
	CarPlate     string          `json:"car_plate"`
	CustomerName string          `json:"customer_name"`
	Description  string          `json:"description"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Type         InvoiceType     `json:"type"`
	InvoiceImage string          `json:"invoice_image,omitempty"`
	XML          []byte          `json:"-"`
	Digest       string          `json:"digest"`
}
