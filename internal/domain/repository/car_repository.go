package repository

import "github.com/jhoicas/oficina-manager/internal/domain/entity"

// CarRepository puerto de carros.
type CarRepository interface {
	GetByID(id string) (*entity.Car, error)
	// List en orden de creación.
	List() ([]*entity.Car, error)
	Save(car *entity.Car) error
}

// BudgetRepository puerto de presupuestos.
type BudgetRepository interface {
	GetByID(id string) (*entity.Budget, error)
	List() ([]*entity.Budget, error)
	Save(budget *entity.Budget) error
}
