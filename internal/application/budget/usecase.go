// Package budget gestiona presupuestos y su conversión en carros de servicio.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/carflow"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/pkg/money"
)

// Rules plazos usados al convertir un presupuesto en carro.
type Rules struct {
	DeliveryDays int
	ExitDays     int
}

// UseCase presupuestos.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	docs     ports.DocumentGenerator
	notifier ports.Notifier
	clock    ports.Clock
	rules    Rules
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, repos repository.Set, docs ports.DocumentGenerator, notifier ports.Notifier, clock ports.Clock, rules Rules, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, docs: docs, notifier: notifier, clock: clock, rules: rules, log: log}
}

// Input datos editables del presupuesto.
type Input struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	VehicleBrand  string
	VehicleModel  string
	VehicleYear   int
	VehiclePlate  string
	Services      []entity.BudgetService
	Images        []string
	Actor         entity.Actor
}

func (in Input) services() ([]entity.BudgetService, error) {
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.VehiclePlate) == "" {
		return nil, fmt.Errorf("%w: cliente e placa são obrigatórios", domain.ErrInvalidInput)
	}
	if len(in.Services) == 0 {
		return nil, fmt.Errorf("%w: informe ao menos um serviço", domain.ErrInvalidInput)
	}
	out := make([]entity.BudgetService, 0, len(in.Services))
	for _, s := range in.Services {
		if strings.TrimSpace(s.Description) == "" || !s.Value.IsPositive() {
			return nil, fmt.Errorf("%w: serviço sem descrição ou com valor inválido", domain.ErrInvalidInput)
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.Description = strings.TrimSpace(s.Description)
		out = append(out, s)
	}
	return out, nil
}

func (in Input) apply(b *entity.Budget, services []entity.BudgetService) {
	b.CustomerName = strings.TrimSpace(in.CustomerName)
	b.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	b.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	b.VehicleBrand = strings.TrimSpace(in.VehicleBrand)
	b.VehicleModel = strings.TrimSpace(in.VehicleModel)
	b.VehicleYear = in.VehicleYear
	b.VehiclePlate = strings.ToUpper(strings.TrimSpace(in.VehiclePlate))
	b.Services = services
	b.Images = append([]string(nil), in.Images...)
	b.TotalValue = b.SumServices()
}

// Create registra el presupuesto como Pendente.
func (uc *UseCase) Create(ctx context.Context, in Input) (*entity.Budget, error) {
	services, err := in.services()
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	b := &entity.Budget{ID: uuid.NewString(), CreationDate: now, Status: entity.BudgetPending}
	in.apply(b, services)

	err = uc.txRunner.Run(ctx, func(tx repository.Set) error {
		if err := tx.Budgets.Save(b); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionBudgetCreated, b.ID,
			fmt.Sprintf("Criou orçamento para %s (%s). Total: %s.", b.CustomerName, b.VehiclePlate, money.BRL(b.TotalValue)))
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, "Orçamento criado.")
	return b, nil
}

// UpdateDetails reemplaza los datos del presupuesto mientras siga Pendente.
func (uc *UseCase) UpdateDetails(ctx context.Context, id string, in Input) (*entity.Budget, error) {
	services, err := in.services()
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	var out *entity.Budget
	err = uc.txRunner.Run(ctx, func(tx repository.Set) error {
		b, err := tx.Budgets.GetByID(id)
		if err != nil {
			return err
		}
		if b.Status != entity.BudgetPending {
			return fmt.Errorf("%w: orçamento %s", domain.ErrInvalidTransition, b.Status)
		}
		in.apply(b, services)
		if err := tx.Budgets.Save(b); err != nil {
			return err
		}
		out = b
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionBudgetUpdated, b.ID,
			fmt.Sprintf("Atualizou o orçamento de %s. Total: %s.", b.CustomerName, money.BRL(b.TotalValue)))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus aprueba o rechaza un presupuesto Pendente.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, status entity.BudgetStatus, actor entity.Actor) (*entity.Budget, error) {
	if status != entity.BudgetApproved && status != entity.BudgetRejected {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidTransition, status)
	}
	now := uc.clock.Now()
	var out *entity.Budget
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		b, err := tx.Budgets.GetByID(id)
		if err != nil {
			return err
		}
		if b.Status != entity.BudgetPending {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, status)
		}
		b.Status = status
		if err := tx.Budgets.Save(b); err != nil {
			return err
		}
		out = b
		return audit.Record(tx.Audit, now, actor, entity.ActionBudgetUpdated, b.ID,
			fmt.Sprintf("Alterou o status do orçamento de %s para %s.", b.CustomerName, status))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ConvertToCar crea el carro de un presupuesto Aprovado y lo deja Em Serviço.
func (uc *UseCase) ConvertToCar(ctx context.Context, id string, actor entity.Actor) (*entity.Car, error) {
	now := uc.clock.Now()
	var car *entity.Car
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		b, err := tx.Budgets.GetByID(id)
		if err != nil {
			return err
		}
		if b.Status != entity.BudgetApproved {
			return fmt.Errorf("%w: orçamento %s não pode virar serviço", domain.ErrInvalidTransition, b.Status)
		}
		car = carflow.ConvertBudgetToCar(b, now, uc.rules.DeliveryDays, uc.rules.ExitDays)
		if err := tx.Cars.Save(car); err != nil {
			return err
		}
		b.Status = entity.BudgetInService
		b.CarID = car.ID
		if err := tx.Budgets.Save(b); err != nil {
			return err
		}
		if err := audit.Record(tx.Audit, now, actor, entity.ActionCarAdded, car.ID,
			fmt.Sprintf("Adicionou o carro %s %s (%s) a partir de orçamento.", car.Brand, car.Model, car.Plate)); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, actor, entity.ActionBudgetConverted, b.ID,
			fmt.Sprintf("Converteu o orçamento de %s em serviço (%s).", b.CustomerName, car.Plate))
	})
	if err != nil {
		return nil, err
	}
	for _, img := range car.Images {
		if len(img.Data) == 0 {
			uc.log.Warn().Str("file", img.FileName).Msg("imagem do orçamento ilegível")
		}
	}
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Orçamento convertido em serviço para o carro %s.", car.Plate))
	return car, nil
}

// Get devuelve el presupuesto.
func (uc *UseCase) Get(_ context.Context, id string) (*entity.Budget, error) {
	return uc.repos.Budgets.GetByID(id)
}

// List presupuestos; status vacío devuelve todos.
func (uc *UseCase) List(_ context.Context, status entity.BudgetStatus) ([]*entity.Budget, error) {
	all, err := uc.repos.Budgets.List()
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	out := make([]*entity.Budget, 0, len(all))
	for _, b := range all {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// PDF documento de cotización para el cliente.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, error) {
	b, err := uc.repos.Budgets.GetByID(id)
	if err != nil {
		return nil, err
	}
	profile, err := uc.repos.Profile.Get()
	if err != nil {
		return nil, err
	}
	return uc.docs.BudgetPDF(ctx, profile, b)
}

