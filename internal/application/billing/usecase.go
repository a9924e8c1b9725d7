// Package billing emite las notas de servicio de los carros concluidos.
package billing

import (
	"context"
	"fmt"
	"strings"

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

// UseCase emisión y consulta de notas.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Set
	xml      ports.InvoiceXMLBuilder
	docs     ports.DocumentGenerator
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ports.TxRunner,
	repos repository.Set,
	xml ports.InvoiceXMLBuilder,
	docs ports.DocumentGenerator,
	notifier ports.Notifier,
	clock ports.Clock,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, xml: xml, docs: docs, notifier: notifier, clock: clock, log: log}
}

// IssueInput datos de la nota. TotalValue nil usa el valor del servicio del carro.
type IssueInput struct {
	CarID        string
	Description  string
	TotalValue   *decimal.Decimal
	InvoiceImage string
	Actor        entity.Actor
}

// IssueInvoice emite la nota de un carro concluido.
//
// Errores:
//   - ErrNotFound si el carro no existe.
//   - ErrInvalidTransition si el carro sigue en servicio.
//   - ErrDuplicate si el carro ya tiene nota.
//   - ErrInvalidInput si el total no es positivo.
func (uc *UseCase) IssueInvoice(ctx context.Context, in IssueInput) (*entity.IssuedInvoice, error) {
	var inv *entity.IssuedInvoice
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		car, err := tx.Cars.GetByID(in.CarID)
		if err != nil {
			return err
		}
		if car.Status != entity.CarStatusCompleted && car.Status != entity.CarStatusHistory {
			return fmt.Errorf("%w: carro %s ainda em serviço", domain.ErrInvalidTransition, car.Plate)
		}
		existing, err := tx.Invoices.List()
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.CarID == car.ID {
				return fmt.Errorf("%w: carro %s já possui a nota %d", domain.ErrDuplicate, car.Plate, e.Number)
			}
		}

		total := car.ServiceValue
		if in.TotalValue != nil {
			total = *in.TotalValue
		}
		if !total.IsPositive() {
			return fmt.Errorf("%w: valor da nota deve ser positivo", domain.ErrInvalidInput)
		}
		number, err := tx.Invoices.NextNumber()
		if err != nil {
			return err
		}
		description := strings.TrimSpace(in.Description)
		if description == "" {
			description = strings.TrimSpace(car.Description)
		}
		now := uc.clock.Now()
		inv = &entity.IssuedInvoice{
			ID:           uuid.NewString(),
			Number:       number,
			DateIssued:   now,
			CarID:        car.ID,
			CarPlate:     car.Plate,
			CustomerName: car.Customer,
			Description:  description,
			TotalValue:   total.Round(2),
			Type:         entity.InvoiceIncome,
			InvoiceImage: in.InvoiceImage,
		}

		profile, err := tx.Profile.Get()
		if err != nil {
			return err
		}
		doc, digest, err := uc.xml.Build(profile, inv, car)
		if err != nil {
			return fmt.Errorf("billing: xml: %w", err)
		}
		inv.XML, inv.Digest = doc, digest

		if err := tx.Invoices.Create(inv); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, in.Actor, entity.ActionInvoiceIssued, inv.ID,
			fmt.Sprintf("Emitiu a nota nº %d para o carro %s. Valor: %s.", inv.Number, inv.CarPlate, money.BRL(inv.TotalValue)))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("number", inv.Number).Str("plate", inv.CarPlate).Str("digest", inv.Digest).Msg("nota emitida")
	uc.notifier.Push(entity.NotifySuccess, fmt.Sprintf("Nota nº %d emitida para o carro %s.", inv.Number, inv.CarPlate))
	return inv, nil
}

// Get nota por ID.
func (uc *UseCase) Get(_ context.Context, id string) (*entity.IssuedInvoice, error) {
	return uc.repos.Invoices.GetByID(id)
}

// List notas de la más reciente a la más antigua.
func (uc *UseCase) List(_ context.Context) ([]*entity.IssuedInvoice, error) {
	return uc.repos.Invoices.List()
}

// XML devuelve el documento XML emitido y el nombre de archivo sugerido.
func (uc *UseCase) XML(_ context.Context, id string) ([]byte, string, error) {
	inv, err := uc.repos.Invoices.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	return inv.XML, fmt.Sprintf("nota_%d.xml", inv.Number), nil
}

// PDF genera la representación impresa de la nota.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := uc.repos.Invoices.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	profile, err := uc.repos.Profile.Get()
	if err != nil {
		return nil, "", err
	}
	// El carro puede no existir más; la nota se imprime solo con la placa.
	car, _ := uc.repos.Cars.GetByID(inv.CarID)
	out, err := uc.docs.InvoicePDF(ctx, profile, inv, car)
	if err != nil {
		return nil, "", fmt.Errorf("billing: pdf: %w", err)
	}
	return out, fmt.Sprintf("nota_%d.pdf", inv.Number), nil
}
