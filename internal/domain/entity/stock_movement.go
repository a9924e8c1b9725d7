package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido del movimiento de stock.
type Direction string

const (
	DirectionIn  Direction = "entrada"
	DirectionOut Direction = "saída"
)

// MovementReason motivo del movimiento.
type MovementReason string

const (
	ReasonPurchase    MovementReason = "Compra"
	ReasonAdjustment  MovementReason = "Ajuste"
	ReasonLoss        MovementReason = "Perda"
	ReasonServiceUse  MovementReason = "Consumo em serviço"
	ReasonUnlinkedUse MovementReason = "Consumo não vinculado"
)

// ValidReason indica si el motivo es conocido.
func ValidReason(r MovementReason) bool {
	switch r {
	case ReasonPurchase, ReasonAdjustment, ReasonLoss, ReasonServiceUse, ReasonUnlinkedUse:
		return true
	}
	return false
}

// StockMovement registro append-only del libro de stock.
// Quantity es la cantidad solicitada; en una salida mayor que el saldo,
// ResultingQuantity queda en cero y Clamped en true.
type StockMovement struct {
	ID                string           `json:"id"`
	StockItemID       string           `json:"stock_item_id"`
	StockItemName     string           `json:"stock_item_name"`
	Direction         Direction        `json:"direction"`
	Quantity          decimal.Decimal  `json:"quantity"`
	PreviousQuantity  decimal.Decimal  `json:"previous_quantity"`
	ResultingQuantity decimal.Decimal  `json:"resulting_quantity"`
	Clamped           bool             `json:"clamped"`
	Reason            MovementReason   `json:"reason"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	Timestamp         time.Time        `json:"timestamp"`
	RelatedCarID      string           `json:"related_car_id,omitempty"`
	RelatedCarPlate   string           `json:"related_car_plate,omitempty"`
	RelatedStage      ServiceStage     `json:"related_stage,omitempty"`
	CreatedBy         string           `json:"created_by,omitempty"`
}
