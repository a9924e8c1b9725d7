package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	invdomain "github.com/jhoicas/oficina-manager/internal/domain/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// StockUseCase libro de stock: altas, movimientos y consultas de materiales.
type StockUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner ports.TxRunner, repos repository.Set, notifier ports.Notifier, clock ports.Clock, log zerolog.Logger) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, repos: repos, notifier: notifier, clock: clock, log: log}
}

// MovementInput entrada para ApplyMovement.
type MovementInput struct {
	StockItemID     string
	Direction       entity.Direction
	Quantity        decimal.Decimal
	Reason          entity.MovementReason
	UnitCost        *decimal.Decimal
	RelatedCarID    string
	RelatedCarPlate string
	RelatedStage    entity.ServiceStage
	Actor           entity.Actor
}

func (in MovementInput) validate() error {
	if in.StockItemID == "" || !in.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	if in.Direction != entity.DirectionIn && in.Direction != entity.DirectionOut {
		return fmt.Errorf("%w: direção %q", domain.ErrInvalidInput, in.Direction)
	}
	if !entity.ValidReason(in.Reason) {
		return fmt.Errorf("%w: motivo %q", domain.ErrInvalidInput, in.Reason)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovement registra un movimiento manual (compra, ajuste, pérdida o consumo).
// Una salida mayor que el saldo deja el item en cero y marca el movimiento como Clamped.
func (uc *StockUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		if in.RelatedCarID != "" && in.RelatedCarPlate == "" {
			car, err := tx.Cars.GetByID(in.RelatedCarID)
			if err != nil {
				return err
			}
			in.RelatedCarPlate = car.Plate
		}
		var err error
		mov, err = uc.ApplyInTx(tx, in, now)
		if err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionStockMovement, mov.StockItemID,
			fmt.Sprintf("Registrou %s de %s %s (%s). Saldo: %s.",
				mov.Direction, money.Quantity(mov.Quantity), mov.StockItemName, mov.Reason, money.Quantity(mov.ResultingQuantity)))
	})
	if err != nil {
		return nil, err
	}
	if mov.Clamped {
		uc.notifier.Push(entity.NotifyError, fmt.Sprintf("Saída de %s maior que o saldo; estoque zerado.", mov.StockItemName))
	}
	return mov, nil
}

// ApplyInTx aplica el movimiento con los repositorios de la transacción del caller.
// Lo usa el orquestador de etapas para descontar materiales en la misma unidad de trabajo.
func (uc *StockUseCase) ApplyInTx(tx repository.Set, in MovementInput, now time.Time) (*entity.StockMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item, err := tx.Stock.GetByID(in.StockItemID)
	if err != nil {
		return nil, err
	}
	updated, bal, err := invdomain.Apply(*item, in.Direction, in.Quantity, in.UnitCost)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = now
	if err := tx.Stock.Save(&updated); err != nil {
		return nil, err
	}
	if bal.Clamped {
		uc.log.Warn().
			Str("item", item.Name).
			Str("solicitado", in.Quantity.String()).
			Str("saldo_anterior", bal.Previous.String()).
			Msg("saída maior que o saldo, estoque truncado em zero")
	}

	mov := &entity.StockMovement{
		ID:                uuid.NewString(),
		StockItemID:       item.ID,
		StockItemName:     item.Name,
		Direction:         in.Direction,
		Quantity:          in.Quantity,
		PreviousQuantity:  bal.Previous,
		ResultingQuantity: bal.Resulting,
		Clamped:           bal.Clamped,
		Reason:            in.Reason,
		UnitCost:          in.UnitCost,
		Timestamp:         now,
		RelatedCarID:      in.RelatedCarID,
		RelatedCarPlate:   in.RelatedCarPlate,
		RelatedStage:      in.RelatedStage,
		CreatedBy:         in.Actor.ID,
	}
	if err := tx.Movements.Append(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// AddItemInput alta de material.
type AddItemInput struct {
	Name            string
	Category        entity.StockCategory
	Unit            entity.Unit
	InitialQuantity decimal.Decimal
	MinimumQuantity decimal.Decimal
	UnitPrice       decimal.Decimal
	Supplier        string
	ExpiryDate      *time.Time
	Actor           entity.Actor
}

// AddItem crea el material. La cantidad inicial entra como movimiento de compra.
func (uc *StockUseCase) AddItem(ctx context.Context, in AddItemInput) (*entity.StockItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.InitialQuantity.IsNegative() || in.MinimumQuantity.IsNegative() || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit := invdomain.NormalizeUnit(in.Unit)
	switch unit {
	case entity.UnitUnits, entity.UnitGrams, entity.UnitML, entity.UnitLiters, entity.UnitSheets:
	default:
		return nil, fmt.Errorf("%w: unidade %q", domain.ErrInvalidInput, in.Unit)
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryOther
	}
	now := uc.clock.Now()
	item := &entity.StockItem{
		ID:              uuid.NewString(),
		Name:            name,
		Category:        category,
		Unit:            unit,
		CurrentQuantity: decimal.Zero,
		MinimumQuantity: in.MinimumQuantity,
		UnitPrice:       in.UnitPrice,
		Supplier:        in.Supplier,
		ExpiryDate:      in.ExpiryDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		existing, err := tx.Stock.List()
		if err != nil {
			return err
		}
		for _, it := range existing {
			if invdomain.SameName(it.Name, name) {
				return fmt.Errorf("%w: item %q já existe", domain.ErrDuplicate, name)
			}
		}
		if err := tx.Stock.Save(item); err != nil {
			return err
		}
		if in.InitialQuantity.IsPositive() {
			mov, err := uc.ApplyInTx(tx, MovementInput{
				StockItemID: item.ID,
				Direction:   entity.DirectionIn,
				Quantity:    in.InitialQuantity,
				Reason:      entity.ReasonPurchase,
				Actor:       in.Actor,
			}, now)
			if err != nil {
				return err
			}
			item.CurrentQuantity = mov.ResultingQuantity
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionStockItemAdded, item.ID,
			fmt.Sprintf("Adicionou item ao estoque: %s.", item.Name))
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Item %q adicionado ao estoque.", item.Name))
	return item, nil
}

// UpdateItemInput campos editables (nil = sin cambio). La cantidad solo cambia por movimientos.
type UpdateItemInput struct {
	Name            *string
	Category        *entity.StockCategory
	MinimumQuantity *decimal.Decimal
	UnitPrice       *decimal.Decimal
	Supplier        *string
	ExpiryDate      *time.Time
	Actor           entity.Actor
}

// UpdateItem edita el material; un cambio de precio queda en la auditoría.
func (uc *StockUseCase) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (*entity.StockItem, error) {
	now := uc.clock.Now()
	var out *entity.StockItem
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		item, err := tx.Stock.GetByID(id)
		if err != nil {
			return err
		}
		oldPrice := item.UnitPrice
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.ErrInvalidInput
			}
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			item.Category = *in.Category
		}
		if in.MinimumQuantity != nil {
			if in.MinimumQuantity.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.MinimumQuantity = *in.MinimumQuantity
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.UnitPrice = *in.UnitPrice
		}
		if in.Supplier != nil {
			item.Supplier = *in.Supplier
		}
		if in.ExpiryDate != nil {
			item.ExpiryDate = in.ExpiryDate
		}
		item.UpdatedAt = now
		if err := tx.Stock.Save(item); err != nil {
			return err
		}
		out = item
		if oldPrice.Equal(item.UnitPrice) {
			return nil
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionStockItemUpdated, item.ID,
			fmt.Sprintf("Atualizou o preço de '%s' de %s para %s.", item.Name, money.BRL(oldPrice), money.BRL(item.UnitPrice)))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem elimina el material; los movimientos históricos se conservan.
func (uc *StockUseCase) RemoveItem(ctx context.Context, id string, actor entity.Actor) error {
	now := uc.clock.Now()
	var name string
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		item, err := tx.Stock.GetByID(id)
		if err != nil {
			return err
		}
		name = item.Name
		if err := tx.Stock.Delete(id); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, actor, entity.ActionStockItemRemoved, id,
			fmt.Sprintf("Removeu o item '%s' do estoque.", item.Name))
	})
	if err != nil {
		return err
	}
	uc.notifier.Push(entity.NotifyInfo, fmt.Sprintf("Item %q removido.", name))
	return nil
}

// GetItem devuelve el material.
func (uc *StockUseCase) GetItem(_ context.Context, id string) (*entity.StockItem, error) {
	return uc.repos.Stock.GetByID(id)
}

// ListItems todos los materiales en orden de alta.
func (uc *StockUseCase) ListItems(_ context.Context) ([]*entity.StockItem, error) {
	return uc.repos.Stock.List()
}

// LowStock materiales en o bajo el mínimo. Se recalcula en cada llamada.
func (uc *StockUseCase) LowStock(ctx context.Context) ([]entity.StockItem, error) {
	items, err := uc.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return invdomain.LowStock(derefItems(items)), nil
}

// ListMovements movimientos filtrados, del más reciente al más antiguo.
func (uc *StockUseCase) ListMovements(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return uc.repos.Movements.List(filter)
}

func derefItems(items []*entity.StockItem) []entity.StockItem {
	out := make([]entity.StockItem, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}
