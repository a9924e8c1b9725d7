// Package expenses administra los gastos fijos y el resumen de gastos del mes.
package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/payroll"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// UseCase gastos fijos.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	notifier ports.Notifier
	clock    ports.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Set, notifier ports.Notifier, clock ports.Clock) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, notifier: notifier, clock: clock}
}

// AddInput gasto recurrente o compra puntual.
type AddInput struct {
	Name              string
	MonthlyCost       decimal.Decimal
	IsOneTimePurchase bool
	PurchaseDate      *time.Time
	InvoiceImage      string
	Actor             entity.Actor
}

// Add registra el gasto. Una compra puntual sin fecha toma la fecha actual.
func (uc *UseCase) Add(ctx context.Context, in AddInput) (*entity.FixedExpense, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.MonthlyCost.IsPositive() {
		return nil, fmt.Errorf("%w: nome e valor positivo são obrigatórios", domain.ErrInvalidInput)
	}
	now := uc.clock.Now()
	exp := &entity.FixedExpense{
		ID:                uuid.NewString(),
		Name:              name,
		MonthlyCost:       in.MonthlyCost,
		IsOneTimePurchase: in.IsOneTimePurchase,
		InvoiceImage:      in.InvoiceImage,
	}
	if in.IsOneTimePurchase {
		date := now
		if in.PurchaseDate != nil {
			date = *in.PurchaseDate
		}
		exp.PurchaseDate = &date
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		if err := tx.Expenses.Save(exp); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionExpenseAdded, exp.ID,
			fmt.Sprintf("Adicionou a despesa '%s' de %s.", exp.Name, money.BRL(exp.MonthlyCost)))
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Despesa %q adicionada.", exp.Name))
	return exp, nil
}

// Remove elimina un gasto manual. Los gastos de salario se administran desde el empleado.
func (uc *UseCase) Remove(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx repository.Set) error {
		exp, err := tx.Expenses.GetByID(id)
		if err != nil {
			return err
		}
		if exp.EmployeeID != "" {
			return fmt.Errorf("%w: despesa de salário segue o cadastro do funcionário", domain.ErrConflict)
		}
		return tx.Expenses.Delete(id)
	})
}

// List gastos en orden de alta.
func (uc *UseCase) List(_ context.Context) ([]*entity.FixedExpense, error) {
	return uc.repos.Expenses.List()
}

// Summary resumen de gastos del mes calendario actual.
// FixedPotential suma todos los gastos fijos, salarios incluidos; TotalCombined
// suma salarios pagados, otros gastos fijos y materiales consumidos.
type Summary struct {
	FixedPotential        decimal.Decimal            `json:"fixed_potential"`
	OtherFixed            decimal.Decimal            `json:"other_fixed"`
	MaterialsConsumedCost decimal.Decimal            `json:"materials_consumed_cost"`
	SalariesPaid          decimal.Decimal            `json:"salaries_paid"`
	PaymentsByEmployee    map[string]decimal.Decimal `json:"payments_by_employee"`
	TotalCombined         decimal.Decimal            `json:"total_combined"`
	ConsumedMaterials     []*entity.StockMovement    `json:"consumed_materials"`
}

// Summary calcula el resumen del mes.
func (uc *UseCase) Summary(_ context.Context) (*Summary, error) {
	start, end := payroll.MonthRange(uc.clock.Now())
	last := end.Add(-time.Nanosecond)

	expenses, err := uc.repos.Expenses.List()
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.Stock.List()
	if err != nil {
		return nil, err
	}
	movs, err := uc.repos.Movements.List(repository.MovementFilter{Direction: entity.DirectionOut, From: &start, To: &last})
	if err != nil {
		return nil, err
	}
	payments, err := uc.repos.Payments.List("", start, end)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		FixedPotential:     decimal.Zero,
		OtherFixed:         decimal.Zero,
		SalariesPaid:       decimal.Zero,
		PaymentsByEmployee: make(map[string]decimal.Decimal),
		ConsumedMaterials:  movs,
	}
	for _, e := range expenses {
		s.FixedPotential = s.FixedPotential.Add(e.MonthlyCost)
		if e.EmployeeID == "" {
			s.OtherFixed = s.OtherFixed.Add(e.MonthlyCost)
		}
	}
	for _, p := range payments {
		s.PaymentsByEmployee[p.EmployeeID] = s.PaymentsByEmployee[p.EmployeeID].Add(p.Amount)
		s.SalariesPaid = s.SalariesPaid.Add(p.Amount)
	}
	s.MaterialsConsumedCost = inventory.ConsumedCost(movs, items)
	s.TotalCombined = s.OtherFixed.Add(s.SalariesPaid).Add(s.MaterialsConsumedCost)
	return s, nil
}
