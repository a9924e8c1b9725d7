// Package carflow orquesta el avance de los carros por las etapas de servicio.
package carflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/inventory"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	flow "github.com/jhoicas/oficina-manager/internal/domain/carflow"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	invdomain "github.com/jhoicas/oficina-manager/internal/domain/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// UseCase operaciones sobre carros en servicio.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	machine  *flow.Machine
	stock    *inventory.StockUseCase
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. stock se usa para descontar materiales
// dentro de la misma transacción que concluye la etapa.
func NewUseCase(
	txRunner ports.TxRunner,
	repos repository.Set,
	machine *flow.Machine,
	stock *inventory.StockUseCase,
	notifier ports.Notifier,
	clock ports.Clock,
	log zerolog.Logger,
) *UseCase {
	if machine == nil {
		machine = flow.NewMachine(nil)
	}
	return &UseCase{
		txRunner: txRunner,
		repos:    repos,
		machine:  machine,
		stock:    stock,
		notifier: notifier,
		clock:    clock,
		log:      log.With().Str("component", "carflow").Logger(),
	}
}

// ── Alta y consulta ──────────────────────────────────────────────────────────

// AddCarInput datos de recepción del carro.
type AddCarInput struct {
	Brand        string
	Model        string
	Year         int
	VIN          string
	Plate        string
	Customer     string
	Description  string
	Parts        []entity.CarPart
	Images       []entity.Image
	DeliveryDate time.Time
	ExitDate     time.Time
	ServiceValue decimal.Decimal
	Actor        entity.Actor
}

// AddCar registra el carro en la primera etapa.
func (uc *UseCase) AddCar(ctx context.Context, in AddCarInput) (*entity.Car, error) {
	plate := flow.NormalizePlate(in.Plate)
	if plate == "" || strings.TrimSpace(in.Brand) == "" || strings.TrimSpace(in.Model) == "" {
		return nil, fmt.Errorf("%w: marca, modelo e placa são obrigatórios", domain.ErrInvalidInput)
	}
	if in.ServiceValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	parts := make([]entity.CarPart, 0, len(in.Parts))
	for _, p := range in.Parts {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		parts = append(parts, p)
	}
	car := &entity.Car{
		ID:              uuid.NewString(),
		Brand:           strings.TrimSpace(in.Brand),
		Model:           strings.TrimSpace(in.Model),
		Year:            in.Year,
		VIN:             strings.TrimSpace(in.VIN),
		Plate:           plate,
		Customer:        strings.TrimSpace(in.Customer),
		Description:     in.Description,
		Parts:           parts,
		Images:          append([]entity.Image{}, in.Images...),
		DeliveryDate:    in.DeliveryDate,
		ExitDate:        in.ExitDate,
		Status:          entity.CarStatusInProgress,
		CurrentStage:    entity.Stages[0],
		StageDetails:    entity.NewStageDetails(),
		ServiceValue:    in.ServiceValue,
		AccumulatedCost: decimal.Zero,
		WorkLog:         []entity.WorkLogEntry{},
		CreatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		if err := tx.Cars.Save(car); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionCarAdded, car.ID,
			fmt.Sprintf("Adicionou o carro %s %s (%s).", car.Brand, car.Model, car.Plate))
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Carro %s adicionado.", car.Plate))
	return car, nil
}

// GetCar devuelve el carro.
func (uc *UseCase) GetCar(_ context.Context, id string) (*entity.Car, error) {
	return uc.repos.Cars.GetByID(id)
}

// ── Conclusión de etapa ──────────────────────────────────────────────────────

// CompleteStageInput datos enviados desde el portal de loja al concluir la etapa actual.
type CompleteStageInput struct {
	CarID        string
	EmployeeID   string
	AuthPassword string
	Comments     string
	Photos       []string
	Data         *entity.StageData
}

// CompleteStage concluye la etapa actual: transición, descuento de materiales,
// auditoría y aviso. Todo corre en una sola transacción.
func (uc *UseCase) CompleteStage(ctx context.Context, in CompleteStageInput) (*entity.Car, error) {
	now := uc.clock.Now()
	var (
		res   flow.CompletionResult
		actor entity.Actor
	)
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		car, err := tx.Cars.GetByID(in.CarID)
		if err != nil {
			return err
		}
		emp, err := tx.Employees.GetByID(in.EmployeeID)
		if err != nil {
			return err
		}
		items, err := tx.Stock.List()
		if err != nil {
			return err
		}
		catalog := make(flow.Catalog, 0, len(items))
		for _, it := range items {
			catalog = append(catalog, *it)
		}

		res, err = uc.machine.CompleteStage(car, flow.Completion{
			Employee:     emp,
			AuthPassword: in.AuthPassword,
			Comments:     in.Comments,
			Photos:       in.Photos,
			Data:         in.Data,
			Now:          now,
		}, catalog)
		if err != nil {
			return err
		}
		if err := tx.Cars.Save(res.Car); err != nil {
			return err
		}
		actor = entity.Actor{ID: emp.ID, Name: emp.Name}
		return uc.onStageCompleted(tx, res, catalog, actor, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("car", res.Car.Plate).
		Str("stage", string(res.CompletedStage)).
		Str("cost", res.Cost.StringFixed(2)).
		Msg("etapa concluída")
	uc.notifier.Push(entity.NotifySuccess,
		fmt.Sprintf("Etapa '%s' do carro %s concluída.", res.CompletedStage, res.Car.Plate))
	return res.Car, nil
}

// onStageCompleted descuenta los materiales consumidos y registra la auditoría.
// Un material sin item de stock se omite.
func (uc *UseCase) onStageCompleted(tx repository.Set, res flow.CompletionResult, catalog flow.Catalog, actor entity.Actor, now time.Time) error {
	for _, mat := range res.MaterialsToDeduct {
		item, ok := catalog.FindByName(mat.Name)
		if !ok {
			uc.log.Debug().Str("material", mat.Name).Msg("material sem item de estoque, desconto ignorado")
			continue
		}
		qty, ok := invdomain.Convert(mat.Quantity, mat.Unit, item.Unit)
		if !ok {
			uc.log.Warn().
				Str("material", mat.Name).
				Str("from", string(mat.Unit)).
				Str("to", string(item.Unit)).
				Msg("unidades sem conversão, quantidade usada sem ajuste")
			qty = mat.Quantity
		}
		if !qty.IsPositive() {
			continue
		}
		_, err := uc.stock.ApplyInTx(tx, inventory.MovementInput{
			StockItemID:     item.ID,
			Direction:       entity.DirectionOut,
			Quantity:        qty,
			Reason:          entity.ReasonServiceUse,
			RelatedCarID:    res.Car.ID,
			RelatedCarPlate: res.Car.Plate,
			RelatedStage:    res.CompletedStage,
			Actor:           actor,
		}, now)
		if err != nil {
			return fmt.Errorf("desconto de %s: %w", mat.Name, err)
		}
	}
	return audit.Record(tx.Audit, now, actor, entity.ActionStageCompleted, res.Car.ID,
		fmt.Sprintf("Concluiu a etapa '%s' para o carro %s. Custo: %s.",
			res.CompletedStage, res.Car.Plate, money.BRL(res.Cost)))
}

// ── Otras transiciones ───────────────────────────────────────────────────────

// RevertStage vuelve el carro a la etapa anterior. Historial y costos se conservan.
func (uc *UseCase) RevertStage(ctx context.Context, carID string, actor entity.Actor) (*entity.Car, error) {
	now := uc.clock.Now()
	var out *entity.Car
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		car, err := tx.Cars.GetByID(carID)
		if err != nil {
			return err
		}
		next, err := flow.RevertStage(car)
		if err != nil {
			return err
		}
		if err := tx.Cars.Save(next); err != nil {
			return err
		}
		out = next
		return audit.Record(tx.Audit, now, actor, entity.ActionStageReverted, car.ID,
			fmt.Sprintf("Reverteu o carro %s de '%s' para '%s'. Histórico e custos foram mantidos.",
				car.Plate, car.CurrentStage, next.CurrentStage))
	})
	if err != nil {
		if errorsIsTransition(err) {
			uc.notifier.Push(entity.NotifyError, "Não é possível reverter a primeira etapa.")
		}
		return nil, err
	}
	uc.notifier.Push(entity.NotifyInfo, fmt.Sprintf("Carro %s voltou para '%s'.", out.Plate, out.CurrentStage))
	return out, nil
}

// MarkRead limpia los indicadores al abrir el detalle del carro.
func (uc *UseCase) MarkRead(ctx context.Context, carID string) (*entity.Car, error) {
	return uc.mutate(ctx, carID, func(car *entity.Car) (*entity.Car, error) {
		if !car.HasUnreadUpdate && !car.HasProblemReport {
			return car, nil
		}
		return flow.MarkRead(car), nil
	})
}

// ReportProblem registra un problema en la etapa actual del carro.
func (uc *UseCase) ReportProblem(ctx context.Context, carID string, actor entity.Actor, text string) (*entity.Car, error) {
	now := uc.clock.Now()
	var out *entity.Car
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		car, err := tx.Cars.GetByID(carID)
		if err != nil {
			return err
		}
		next, err := flow.ReportProblem(car, actor, text, now)
		if err != nil {
			return err
		}
		if err := tx.Cars.Save(next); err != nil {
			return err
		}
		out = next
		return audit.Record(tx.Audit, now, actor, entity.ActionProblemReported, car.ID,
			fmt.Sprintf("Reportou problema no carro %s (%s): %s", car.Plate, car.CurrentStage, strings.TrimSpace(text)))
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifyInfo, fmt.Sprintf("Problema reportado no carro %s.", out.Plate))
	return out, nil
}

// ResolveProblem marca como resuelto el reporte del historial.
func (uc *UseCase) ResolveProblem(ctx context.Context, carID, entryID string, actor entity.Actor) (*entity.Car, error) {
	now := uc.clock.Now()
	var out *entity.Car
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		car, err := tx.Cars.GetByID(carID)
		if err != nil {
			return err
		}
		next, err := flow.ResolveProblem(car, entryID)
		if err != nil {
			return err
		}
		if err := tx.Cars.Save(next); err != nil {
			return err
		}
		out = next
		return audit.Record(tx.Audit, now, actor, entity.ActionProblemResolved, car.ID,
			fmt.Sprintf("Resolveu um problema do carro %s.", car.Plate))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddStagePhotos agrega fotos a la etapa actual sin concluirla.
func (uc *UseCase) AddStagePhotos(ctx context.Context, carID string, photos []string) (*entity.Car, error) {
	return uc.mutate(ctx, carID, func(car *entity.Car) (*entity.Car, error) {
		next, err := flow.AddStagePhotos(car, photos)
		if err != nil {
			return nil, err
		}
		next.HasUnreadUpdate = true
		return next, nil
	})
}

func (uc *UseCase) mutate(ctx context.Context, carID string, fn func(*entity.Car) (*entity.Car, error)) (*entity.Car, error) {
	var out *entity.Car
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		car, err := tx.Cars.GetByID(carID)
		if err != nil {
			return err
		}
		next, err := fn(car)
		if err != nil {
			return err
		}
		out = next
		return tx.Cars.Save(next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
