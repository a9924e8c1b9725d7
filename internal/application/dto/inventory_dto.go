package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para POST /api/stock/movements.
type StockMovementRequest struct {
	StockItemID string           `json:"stock_item_id"`
	Direction   string           `json:"direction"` // entrada | saída
	Quantity    decimal.Decimal  `json:"quantity"`
	Reason      string           `json:"reason"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"` // solo entradas de compra
	CarID       string           `json:"car_id,omitempty"`
}

// StockItemRequest body para alta de material.
type StockItemRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Supplier        string          `json:"supplier,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
}

// StockItemUpdateRequest campos editables; nil = sin cambio.
type StockItemUpdateRequest struct {
	Name            *string          `json:"name,omitempty"`
	Category        *string          `json:"category,omitempty"`
	MinimumQuantity *decimal.Decimal `json:"minimum_quantity,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier        *string          `json:"supplier,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
}

// ReplenishmentSuggestionDTO sugerencia de compra para un material en o bajo el mínimo.
type ReplenishmentSuggestionDTO struct {
	StockItemID        string          `json:"stock_item_id"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentQuantity    decimal.Decimal `json:"current_quantity"`
	MinimumQuantity    decimal.Decimal `json:"minimum_quantity"`
	IdealQuantity      decimal.Decimal `json:"ideal_quantity"`       // mínimo * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // ideal - actual
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // sugerido * precio
	UsedLast30Days     decimal.Decimal `json:"used_last_30d"`        // salidas por consumo
	Priority           int             `json:"priority"`             // 1 = más urgente
}
