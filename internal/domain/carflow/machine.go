// Package carflow implementa la máquina de estados de etapas del carro.
// Todas las operaciones reciben el carro por puntero y devuelven una copia nueva;
// el original nunca se modifica.
package carflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// Machine aplica las transiciones de etapa con la tabla de costos configurada.
type Machine struct {
	costs *CostRegistry
}

// NewMachine construye la máquina; registry nil usa las estrategias por defecto.
func NewMachine(registry *CostRegistry) *Machine {
	if registry == nil {
		registry = NewCostRegistry()
	}
	return &Machine{costs: registry}
}

// Completion datos informados al concluir la etapa actual.
type Completion struct {
	Employee     *entity.Employee
	AuthPassword string
	Comments     string
	Photos       []string
	Data         *entity.StageData
	Now          time.Time
}

// CompletionResult carro actualizado y materiales a descontar del stock.
type CompletionResult struct {
	Car               *entity.Car
	CompletedStage    entity.ServiceStage
	Cost              decimal.Decimal
	MaterialsToDeduct []entity.MaterialUsage
}

// CompleteStage concluye la etapa actual del carro.
//   - ErrInvalidInput: sin empleado.
//   - ErrAuth: la contraseña no coincide; nada cambia.
//   - ErrInvalidTransition: el carro ya está concluido.
func (m *Machine) CompleteStage(car *entity.Car, in Completion, stock PriceLookup) (CompletionResult, error) {
	if car == nil {
		return CompletionResult{}, domain.ErrNotFound
	}
	if in.Employee == nil {
		return CompletionResult{}, fmt.Errorf("%w: funcionário responsável obrigatório", domain.ErrInvalidInput)
	}
	if in.Employee.Password != in.AuthPassword {
		return CompletionResult{}, domain.ErrAuth
	}
	if car.Status != entity.CarStatusInProgress {
		return CompletionResult{}, fmt.Errorf("%w: carro %s não está em andamento", domain.ErrInvalidTransition, car.Plate)
	}
	stage := car.CurrentStage
	if !stage.IsValid() {
		return CompletionResult{}, fmt.Errorf("%w: etapa %q", domain.ErrInvalidTransition, stage)
	}
	if stock == nil {
		stock = Catalog(nil)
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	sc := m.costs.Compute(stage, in.Data, stock)
	next := car.Clone()

	cost := sc.Cost
	entry := entity.WorkLogEntry{
		ID:            uuid.NewString(),
		Timestamp:     now,
		Stage:         stage,
		EmployeeID:    in.Employee.ID,
		EmployeeName:  in.Employee.Name,
		Photos:        append([]string(nil), in.Photos...),
		Cost:          &cost,
		MaterialsUsed: sc.Materials,
	}
	if c := strings.TrimSpace(in.Comments); c != "" {
		entry.Note = entity.CommentNote(c)
	}
	next.WorkLog = append(next.WorkLog, entry)

	if stage == entity.StageDisassembly && in.Data != nil && in.Data.HasBrokenPart &&
		in.Data.BrokenPart != nil && strings.TrimSpace(in.Data.BrokenPart.Name) != "" {
		next.WorkLog = append(next.WorkLog, entity.WorkLogEntry{
			ID:           uuid.NewString(),
			Timestamp:    now,
			Stage:        stage,
			EmployeeID:   in.Employee.ID,
			EmployeeName: in.Employee.Name,
			Note: entity.ProblemNote(fmt.Sprintf("Peça quebrada - %s. Custo estimado: %s",
				strings.TrimSpace(in.Data.BrokenPart.Name), money.BRL(in.Data.BrokenPart.Cost))),
		})
		next.HasProblemReport = true
	}

	if next.StageDetails == nil {
		next.StageDetails = entity.NewStageDetails()
	}
	detail := next.StageDetails[stage]
	if detail == nil {
		detail = &entity.StageDetail{Photos: []string{}}
		next.StageDetails[stage] = detail
	}
	detail.Photos = append(detail.Photos, in.Photos...)
	detail.Expenses = detail.Expenses.Add(cost)
	detail.Details = in.Data.Clone()

	next.AccumulatedCost = next.AccumulatedCost.Add(cost)

	if following, ok := stage.Next(); ok {
		next.CurrentStage = following
	} else {
		next.Status = entity.CarStatusCompleted
		next.ExitDate = now
	}
	next.HasUnreadUpdate = true

	return CompletionResult{
		Car:               next,
		CompletedStage:    stage,
		Cost:              cost,
		MaterialsToDeduct: sc.Materials,
	}, nil
}

// RevertStage vuelve una etapa atrás. Costo e historial se mantienen.
func RevertStage(car *entity.Car) (*entity.Car, error) {
	if car == nil {
		return nil, domain.ErrNotFound
	}
	prev, ok := car.CurrentStage.Prev()
	if !ok {
		return nil, fmt.Errorf("%w: não é possível reverter a primeira etapa", domain.ErrInvalidTransition)
	}
	next := car.Clone()
	next.CurrentStage = prev
	next.Status = entity.CarStatusInProgress
	next.HasUnreadUpdate = false
	return next, nil
}

// MarkRead limpia los indicadores de novedad y de problema.
func MarkRead(car *entity.Car) *entity.Car {
	next := car.Clone()
	next.HasUnreadUpdate = false
	next.HasProblemReport = false
	return next
}

// ReportProblem agrega un reporte de problema en la etapa actual.
func ReportProblem(car *entity.Car, reporter entity.Actor, text string, now time.Time) (*entity.Car, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: descrição do problema obrigatória", domain.ErrInvalidInput)
	}
	next := car.Clone()
	next.WorkLog = append(next.WorkLog, entity.WorkLogEntry{
		ID:           uuid.NewString(),
		Timestamp:    now,
		Stage:        car.CurrentStage,
		EmployeeID:   reporter.ID,
		EmployeeName: reporter.Name,
		Note:         entity.ProblemNote(text),
	})
	next.HasProblemReport = true
	return next, nil
}

// ResolveProblem marca el reporte como resuelto y recalcula HasProblemReport.
func ResolveProblem(car *entity.Car, entryID string) (*entity.Car, error) {
	next := car.Clone()
	found := false
	for i := range next.WorkLog {
		if next.WorkLog[i].ID == entryID && next.WorkLog[i].Note.IsProblem() {
			next.WorkLog[i].Note.Resolved = true
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: problema %s", domain.ErrNotFound, entryID)
	}
	next.HasProblemReport = next.OpenProblems() > 0
	return next, nil
}

// AddStagePhotos agrega fotos a la etapa actual sin concluirla.
func AddStagePhotos(car *entity.Car, photos []string) (*entity.Car, error) {
	if len(photos) == 0 {
		return nil, fmt.Errorf("%w: nenhuma foto enviada", domain.ErrInvalidInput)
	}
	next := car.Clone()
	if next.StageDetails == nil {
		next.StageDetails = entity.NewStageDetails()
	}
	detail := next.StageDetails[next.CurrentStage]
	if detail == nil {
		detail = &entity.StageDetail{Photos: []string{}}
		next.StageDetails[next.CurrentStage] = detail
	}
	detail.Photos = append(detail.Photos, photos...)
	return next, nil
}
