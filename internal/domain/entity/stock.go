package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit unidad de medida base de un item de stock.
type Unit string

const (
	UnitUnits  Unit = "unidades"
	UnitGrams  Unit = "gramas"
	UnitML     Unit = "ml"
	UnitLiters Unit = "litros"
	UnitSheets Unit = "folhas"
)

// StockCategory categoría del material.
type StockCategory string

const (
	CategorySandpaper StockCategory = "Lixa"
	CategoryPaint     StockCategory = "Tinta"
	CategoryPutty     StockCategory = "Massa"
	CategoryVarnish   StockCategory = "Verniz"
	CategoryTool      StockCategory = "Ferramenta"
	CategoryOther     StockCategory = "Outros"
)

// StockItem material en el almacén. CurrentQuantity nunca es negativa.
type StockItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        StockCategory   `json:"category"`
	Unit            Unit            `json:"unit"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Supplier        string          `json:"supplier,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsLow stock en o por debajo del mínimo.
func (s *StockItem) IsLow() bool {
	return s.CurrentQuantity.LessThanOrEqual(s.MinimumQuantity)
}

// Clone copia del item.
func (s *StockItem) Clone() *StockItem {
	if s == nil {
		return nil
	}
	cp := *s
	if s.ExpiryDate != nil {
		t := *s.ExpiryDate
		cp.ExpiryDate = &t
	}
	return &cp
}
