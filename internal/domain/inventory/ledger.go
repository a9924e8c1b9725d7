// Package inventory contiene las reglas puras del libro de stock de la oficina.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// Balance saldo antes y después de aplicar un movimiento.
type Balance struct {
	Previous  decimal.Decimal
	Resulting decimal.Decimal
	// Clamped: la salida pedida superaba el saldo y se truncó en cero.
	Clamped bool
}

// Apply aplica un movimiento al item y devuelve la copia actualizada.
// Entrada suma sin condiciones; salida nunca deja el saldo negativo.
// Si la entrada trae unitCost, el precio unitario pasa a ser el promedio ponderado.
func Apply(item entity.StockItem, dir entity.Direction, qty decimal.Decimal, unitCost *decimal.Decimal) (entity.StockItem, Balance, error) {
	if !qty.IsPositive() {
		return item, Balance{}, fmt.Errorf("%w: cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	bal := Balance{Previous: item.CurrentQuantity}
	switch dir {
	case entity.DirectionIn:
		if unitCost != nil && !unitCost.IsNegative() {
			item.UnitPrice = CostCalculator(item.CurrentQuantity, item.UnitPrice, qty, *unitCost)
		}
		item.CurrentQuantity = item.CurrentQuantity.Add(qty)
	case entity.DirectionOut:
		next := item.CurrentQuantity.Sub(qty)
		if next.IsNegative() {
			next = decimal.Zero
			bal.Clamped = true
		}
		item.CurrentQuantity = next
	default:
		return item, Balance{}, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, dir)
	}
	bal.Resulting = item.CurrentQuantity
	return item, bal, nil
}

// LowStock items con saldo en o por debajo del mínimo, en el orden recibido.
func LowStock(items []entity.StockItem) []entity.StockItem {
	out := make([]entity.StockItem, 0)
	for i := range items {
		if items[i].IsLow() {
			out = append(out, items[i])
		}
	}
	return out
}

// FoldName normaliza un nombre para comparar sin distinguir mayúsculas (Unicode).
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// SameName compara nombres de material sin distinguir mayúsculas.
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// FindByName busca el item por nombre sin distinguir mayúsculas.
func FindByName(items []entity.StockItem, name string) (entity.StockItem, bool) {
	key := FoldName(name)
	for _, it := range items {
		if FoldName(it.Name) == key {
			return it, true
		}
	}
	return entity.StockItem{}, false
}

// Consumed cantidad que efectivamente salió del stock en un movimiento de salida.
// En una salida truncada es menor que la solicitada.
func Consumed(m *entity.StockMovement) decimal.Decimal {
	if m == nil || m.Direction != entity.DirectionOut {
		return decimal.Zero
	}
	return m.PreviousQuantity.Sub(m.ResultingQuantity)
}

// ConsumedCost valoriza las salidas al precio unitario actual de cada item.
// Items eliminados valen cero.
func ConsumedCost(movs []*entity.StockMovement, items []*entity.StockItem) decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		prices[it.ID] = it.UnitPrice
	}
	total := decimal.Zero
	for _, m := range movs {
		total = total.Add(Consumed(m).Mul(prices[m.StockItemID]))
	}
	return total
}
