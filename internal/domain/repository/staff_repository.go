package repository

import (
	"time"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// EmployeeRepository puerto de empleados.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
	// GetByEmployeeID busca por el código de acceso al portal de loja.
	GetByEmployeeID(employeeID string) (*entity.Employee, error)
	List() ([]*entity.Employee, error)
	Save(employee *entity.Employee) error
	Delete(id string) error
}

// PaymentRepository puerto append-only de pagos de nómina.
type PaymentRepository interface {
	Append(payment *entity.PaymentRecord) error
	GetByID(id string) (*entity.PaymentRecord, error)
	// List pagos en [from, to); employeeID vacío = todos.
	List(employeeID string, from, to time.Time) ([]*entity.PaymentRecord, error)
}

// ExpenseRepository puerto de gastos fijos.
type ExpenseRepository interface {
	GetByID(id string) (*entity.FixedExpense, error)
	List() ([]*entity.FixedExpense, error)
	Save(expense *entity.FixedExpense) error
	Delete(id string) error
}
