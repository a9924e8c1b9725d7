package repository

import (
	"time"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// MovementFilter filtros del libro de movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	StockItemID string
	Direction   entity.Direction
	CarID       string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// StockMovementRepository puerto append-only del libro de stock.
type StockMovementRepository interface {
	Append(movement *entity.StockMovement) error
	// List devuelve del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
