package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	invdomain "github.com/jhoicas/oficina-manager/internal/domain/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de compra de materiales.
// Combina el saldo actual con el consumo en servicio de los últimos 30 días.
type ReplenishmentUseCase struct {
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	clock        ports.Clock
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	clock ports.Clock,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		clock:        clock,
	}
}

// GenerateReplenishmentList devuelve los materiales en o bajo el mínimo con la cantidad
// sugerida de compra y un ranking: primero mayor consumo reciente, luego mayor déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.stockRepo.List()
	if err != nil {
		return nil, err
	}
	low := invdomain.LowStock(derefItems(items))
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// Consumo en servicio por material (últimos 30 días)
	end := uc.clock.Now()
	start := end.AddDate(0, 0, -30)
	movs, err := uc.movementRepo.List(repository.MovementFilter{
		Direction: entity.DirectionOut,
		From:      &start,
		To:        &end,
	})
	if err != nil {
		return nil, err
	}
	used := make(map[string]decimal.Decimal, len(low))
	for _, m := range movs {
		if m.Reason != entity.ReasonServiceUse {
			continue
		}
		used[m.StockItemID] = used[m.StockItemID].Add(m.Quantity)
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, item := range low {
		ideal := item.MinimumQuantity.Mul(factor)
		suggested := ideal.Sub(item.CurrentQuantity)
		if suggested.LessThanOrEqual(decimal.Zero) {
			suggested = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			StockItemID:        item.ID,
			Name:               item.Name,
			Unit:               string(item.Unit),
			CurrentQuantity:    item.CurrentQuantity,
			MinimumQuantity:    item.MinimumQuantity,
			IdealQuantity:      ideal,
			SuggestedOrderQty:  suggested,
			UnitPrice:          item.UnitPrice,
			EstimatedOrderCost: suggested.Mul(item.UnitPrice).Round(2),
			UsedLast30Days:     used[item.ID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.UsedLast30Days.Equal(b.UsedLast30Days) {
			return a.UsedLast30Days.GreaterThan(b.UsedLast30Days)
		}
		// Tiebreak: mayor déficit absoluto
		defA := a.MinimumQuantity.Sub(a.CurrentQuantity)
		defB := b.MinimumQuantity.Sub(b.CurrentQuantity)
		return defA.GreaterThan(defB)
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
