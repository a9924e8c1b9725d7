// Package staff administra los empleados de la oficina y su actividad.
package staff

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// UseCase alta, edición y baja de empleados.
// El salario se refleja en el gasto fijo "salary-<id>".
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Set, notifier ports.Notifier, clock ports.Clock, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, notifier: notifier, clock: clock, log: log}
}

// RegisterInput datos del empleado nuevo.
type RegisterInput struct {
	Name       string
	Role       entity.EmployeeRole
	Phone      string
	EmployeeID string
	Password   string
	Salary     *decimal.Decimal
	Actor      entity.Actor
}

// Register crea el empleado con su código de acceso al portal de loja.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.Employee, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.EmployeeID)
	switch {
	case name == "" || code == "" || in.Password == "":
		return nil, fmt.Errorf("%w: nome, código e senha são obrigatórios", domain.ErrInvalidInput)
	case !entity.ValidEmployeeRole(in.Role):
		return nil, fmt.Errorf("%w: função %q", domain.ErrInvalidInput, in.Role)
	case in.Salary != nil && in.Salary.IsNegative():
		return nil, fmt.Errorf("%w: salário negativo", domain.ErrInvalidInput)
	}
	now := uc.clock.Now()
	emp := &entity.Employee{
		ID:         uuid.NewString(),
		Name:       name,
		Role:       in.Role,
		Phone:      strings.TrimSpace(in.Phone),
		EmployeeID: code,
		Password:   in.Password,
		Salary:     in.Salary,
		CreatedAt:  now,
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		if err := tx.Employees.Save(emp); err != nil {
			return err
		}
		if err := syncSalaryExpense(tx, emp); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionEmployeeAdded, emp.ID,
			fmt.Sprintf("Cadastrou o funcionário %s (%s).", emp.Name, emp.Role))
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Funcionário %s cadastrado.", emp.Name))
	return emp, nil
}

// UpdateInput campos editables; nil = sin cambio.
type UpdateInput struct {
	Name       *string
	Role       *entity.EmployeeRole
	Phone      *string
	EmployeeID *string
	Password   *string
	// Salary cero quita el salario y su gasto fijo.
	Salary *decimal.Decimal
	Actor  entity.Actor
}

// Update edita el empleado y sincroniza el gasto del salario.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Employee, error) {
	now := uc.clock.Now()
	var out *entity.Employee
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		emp, err := tx.Employees.GetByID(id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.ErrInvalidInput
			}
			emp.Name = strings.TrimSpace(*in.Name)
		}
		if in.Role != nil {
			if !entity.ValidEmployeeRole(*in.Role) {
				return fmt.Errorf("%w: função %q", domain.ErrInvalidInput, *in.Role)
			}
			emp.Role = *in.Role
		}
		if in.Phone != nil {
			emp.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.EmployeeID != nil {
			if strings.TrimSpace(*in.EmployeeID) == "" {
				return domain.ErrInvalidInput
			}
			emp.EmployeeID = strings.TrimSpace(*in.EmployeeID)
		}
		if in.Password != nil && *in.Password != "" {
			emp.Password = *in.Password
		}
		if in.Salary != nil {
			if in.Salary.IsNegative() {
				return domain.ErrInvalidInput
			}
			s := *in.Salary
			emp.Salary = &s
			if s.IsZero() {
				emp.Salary = nil
			}
		}
		if err := tx.Employees.Save(emp); err != nil {
			return err
		}
		if err := syncSalaryExpense(tx, emp); err != nil {
			return err
		}
		out = emp
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionEmployeeUpdated, emp.ID,
			fmt.Sprintf("Atualizou os dados do funcionário %s.", emp.Name))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove elimina el empleado y su gasto de salario. Los pagos y el historial se conservan.
func (uc *UseCase) Remove(ctx context.Context, id string, actor entity.Actor) error {
	now := uc.clock.Now()
	var name string
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		emp, err := tx.Employees.GetByID(id)
		if err != nil {
			return err
		}
		name = emp.Name
		if err := tx.Employees.Delete(id); err != nil {
			return err
		}
		if err := tx.Expenses.Delete(entity.SalaryExpenseID(id)); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return audit.Record(tx.Audit, now, actor, entity.ActionEmployeeRemoved, id,
			fmt.Sprintf("Removeu o funcionário %s.", emp.Name))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("employee_id", id).Str("name", name).Msg("funcionário removido")
	uc.notifier.Push(entity.NotifyInfo, fmt.Sprintf("Funcionário %s removido.", name))
	return nil
}

// Get devuelve el empleado.
func (uc *UseCase) Get(_ context.Context, id string) (*entity.Employee, error) {
	return uc.repos.Employees.GetByID(id)
}

// List empleados en orden de alta.
func (uc *UseCase) List(_ context.Context) ([]*entity.Employee, error) {
	return uc.repos.Employees.List()
}

// syncSalaryExpense crea, actualiza o borra el gasto fijo derivado del salario.
func syncSalaryExpense(tx repository.Set, emp *entity.Employee) error {
	id := entity.SalaryExpenseID(emp.ID)
	if emp.Salary == nil || !emp.Salary.IsPositive() {
		if err := tx.Expenses.Delete(id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return nil
	}
	return tx.Expenses.Save(&entity.FixedExpense{
		ID:          id,
		Name:        entity.SalaryExpenseName(emp.Name),
		MonthlyCost: *emp.Salary,
		EmployeeID:  emp.ID,
	})
}

// ── Actividad ────────────────────────────────────────────────────────────────

// ActivitySource origen de la entrada del feed.
type ActivitySource string

const (
	SourceWorkLog  ActivitySource = "workLog"
	SourceAuditLog ActivitySource = "auditLog"
)

// Activity entrada del feed de actividad del empleado.
type Activity struct {
	ID          string           `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	Description string           `json:"description"`
	Details     string           `json:"details,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Source      ActivitySource   `json:"source"`
}

// Activity combina el historial de trabajo de los carros y la auditoría del empleado,
// del más reciente al más antiguo. STAGE_COMPLETED se omite porque ya aparece en el historial.
func (uc *UseCase) Activity(_ context.Context, employeeID string) ([]Activity, error) {
	emp, err := uc.repos.Employees.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	cars, err := uc.repos.Cars.List()
	if err != nil {
		return nil, err
	}
	feed := make([]Activity, 0)
	for _, car := range cars {
		for _, e := range car.WorkLog {
			if e.EmployeeID != emp.ID {
				continue
			}
			desc := fmt.Sprintf("Concluiu a etapa '%s' no carro %s %s (%s).", e.Stage, car.Brand, car.Model, car.Plate)
			if e.Note.IsProblem() {
				desc = fmt.Sprintf("Reportou problema na etapa '%s' do carro %s.", e.Stage, car.Plate)
			}
			feed = append(feed, Activity{
				ID: e.ID, Timestamp: e.Timestamp, Description: desc,
				Details: e.Note.String(), Cost: e.Cost, Source: SourceWorkLog,
			})
		}
	}

	entries, err := uc.repos.Audit.List(repository.AuditFilter{ActorID: emp.ID})
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Action == entity.ActionStageCompleted || e.Action == entity.ActionProblemReported {
			continue
		}
		feed = append(feed, Activity{ID: e.ID, Timestamp: e.Timestamp, Description: e.Details, Source: SourceAuditLog})
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Timestamp.After(feed[j].Timestamp) })
	return feed, nil
}
