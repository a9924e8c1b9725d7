package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRole función del empleado en la oficina.
type EmployeeRole string

const (
	RoleAssembler    EmployeeRole = "Montador"
	RoleRepairer     EmployeeRole = "Reparador"
	RoleSander       EmployeeRole = "Lixador"
	RolePainter      EmployeeRole = "Pintor"
	RolePolisher     EmployeeRole = "Polidor"
	RoleWasher       EmployeeRole = "Lavador"
	RoleStoreManager EmployeeRole = "Gerente de Loja"
)

// ValidEmployeeRole indica si la función existe.
func ValidEmployeeRole(r EmployeeRole) bool {
	switch r {
	case RoleAssembler, RoleRepairer, RoleSander, RolePainter, RolePolisher, RoleWasher, RoleStoreManager:
		return true
	}
	return false
}

// Employee empleado. Password se compara en texto plano (portal de loja y reautenticación).
type Employee struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Role       EmployeeRole     `json:"role"`
	Phone      string           `json:"phone"`
	EmployeeID string           `json:"employee_id"`
	Password   string           `json:"-"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Clone copia del empleado.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Salary != nil {
		s := *e.Salary
		cp.Salary = &s
	}
	return &cp
}

// PaymentType tipo de pago al empleado.
type PaymentType string

const (
	PaymentSalary  PaymentType = "Salário"
	PaymentAdvance PaymentType = "Vale"
)

// PaymentRecord pago registrado en la nómina.
type PaymentRecord struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Date         time.Time       `json:"date"`
	Type         PaymentType     `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes,omitempty"`
}
