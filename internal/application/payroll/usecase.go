// Package payroll registra los pagos de nómina y el saldo mensual de cada empleado.
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// UseCase libro de pagos.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	docs     ports.DocumentGenerator
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Set, docs ports.DocumentGenerator, notifier ports.Notifier, clock ports.Clock, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, docs: docs, notifier: notifier, clock: clock, log: log}
}

// MonthRange primer instante del mes de now y primer instante del mes siguiente.
func MonthRange(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// Summary saldo del mes de un empleado.
type Summary struct {
	Employee  *entity.Employee `json:"employee"`
	Salary    decimal.Decimal  `json:"salary"`
	TotalPaid decimal.Decimal  `json:"total_paid"`
	Remaining decimal.Decimal  `json:"remaining"`
	CanPay    bool             `json:"can_pay"`
}

func summarize(emp *entity.Employee, payments []*entity.PaymentRecord) Summary {
	salary := decimal.Zero
	if emp.Salary != nil {
		salary = *emp.Salary
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	remaining := salary.Sub(paid)
	return Summary{Employee: emp, Salary: salary, TotalPaid: paid, Remaining: remaining, CanPay: remaining.IsPositive()}
}

// MonthlySummary saldo de cada empleado en el mes calendario actual.
func (uc *UseCase) MonthlySummary(_ context.Context) ([]Summary, error) {
	start, end := MonthRange(uc.clock.Now())
	emps, err := uc.repos.Employees.List()
	if err != nil {
		return nil, err
	}
	payments, err := uc.repos.Payments.List("", start, end)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string][]*entity.PaymentRecord, len(emps))
	for _, p := range payments {
		byEmployee[p.EmployeeID] = append(byEmployee[p.EmployeeID], p)
	}
	out := make([]Summary, 0, len(emps))
	for _, e := range emps {
		out = append(out, summarize(e, byEmployee[e.ID]))
	}
	return out, nil
}

// RecordPayment agrega el pago al libro tal cual. No valida contra el saldo:
// esa verificación corresponde a Pay.
func (uc *UseCase) RecordPayment(ctx context.Context, employeeID string, kind entity.PaymentType, amount decimal.Decimal, notes string, actor entity.Actor) (*entity.PaymentRecord, error) {
	var rec *entity.PaymentRecord
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		var err error
		rec, err = uc.recordInTx(tx, employeeID, kind, amount, notes, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Pagamento de %s para %s registrado.", money.BRL(rec.Amount), rec.EmployeeName))
	return rec, nil
}

func (uc *UseCase) recordInTx(tx repository.Set, employeeID string, kind entity.PaymentType, amount decimal.Decimal, notes string, actor entity.Actor) (*entity.PaymentRecord, error) {
	emp, err := tx.Employees.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	rec := &entity.PaymentRecord{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         now,
		Type:         kind,
		Amount:       amount,
		Notes:        notes,
	}
	if err := tx.Payments.Append(rec); err != nil {
		return nil, err
	}
	if err := audit.Record(tx.Audit, now, actor, entity.ActionPaymentMade, rec.ID,
		fmt.Sprintf("Realizou pagamento (%s) de %s para %s.", kind, money.BRL(amount), emp.Name)); err != nil {
		return nil, err
	}
	return rec, nil
}

// PayInput pedido de pago. Amount nil en Salário paga el saldo restante.
type PayInput struct {
	EmployeeID string
	Type       entity.PaymentType
	Amount     *decimal.Decimal
	Notes      string
	Actor      entity.Actor
}

// Pay valida el pago contra el saldo del mes y lo registra.
//   - ErrInvalidInput: tipo desconocido, valor <= 0 o Vale sin valor.
//   - ErrExceedsBalance: valor mayor que el saldo restante.
func (uc *UseCase) Pay(ctx context.Context, in PayInput) (*entity.PaymentRecord, error) {
	if in.Type != entity.PaymentSalary && in.Type != entity.PaymentAdvance {
		return nil, fmt.Errorf("%w: tipo de pagamento %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Type == entity.PaymentAdvance && in.Amount == nil {
		return nil, fmt.Errorf("%w: valor do vale obrigatório", domain.ErrInvalidInput)
	}
	start, end := MonthRange(uc.clock.Now())
	var rec *entity.PaymentRecord
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		emp, err := tx.Employees.GetByID(in.EmployeeID)
		if err != nil {
			return err
		}
		payments, err := tx.Payments.List(emp.ID, start, end)
		if err != nil {
			return err
		}
		sum := summarize(emp, payments)

		amount := sum.Remaining
		if in.Amount != nil {
			amount = *in.Amount
		}
		if !amount.IsPositive() {
			if in.Amount == nil {
				return fmt.Errorf("%w: saldo de %s já quitado", domain.ErrExceedsBalance, emp.Name)
			}
			return fmt.Errorf("%w: o valor deve ser maior que zero", domain.ErrInvalidInput)
		}
		if amount.GreaterThan(sum.Remaining) {
			return fmt.Errorf("%w: %s excede o saldo de %s", domain.ErrExceedsBalance, money.BRL(amount), money.BRL(sum.Remaining))
		}
		rec, err = uc.recordInTx(tx, emp.ID, in.Type, amount, in.Notes, in.Actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("employee", rec.EmployeeName).Str("amount", rec.Amount.StringFixed(2)).Msg("pagamento registrado")
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Pagamento de %s para %s registrado.", money.BRL(rec.Amount), rec.EmployeeName))
	return rec, nil
}

// ListPayments pagos en [from, to); employeeID vacío = todos.
func (uc *UseCase) ListPayments(_ context.Context, employeeID string, from, to time.Time) ([]*entity.PaymentRecord, error) {
	return uc.repos.Payments.List(employeeID, from, to)
}

// Receipt PDF del comprobante de pago.
func (uc *UseCase) Receipt(ctx context.Context, paymentID string) ([]byte, error) {
	p, err := uc.repos.Payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	emp, err := uc.repos.Employees.GetByID(p.EmployeeID)
	if err != nil {
		// empleado dado de baja: el comprobante sale con los datos del pago
		emp = &entity.Employee{ID: p.EmployeeID, Name: p.EmployeeName}
	}
	profile, err := uc.repos.Profile.Get()
	if err != nil {
		return nil, err
	}
	return uc.docs.PaymentReceiptPDF(ctx, profile, p, emp)
}
