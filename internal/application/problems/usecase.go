// Package problems gestiona los problemas generales reportados desde el portal de loja.
package problems

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// UseCase reporte y resolución de problemas sin carro asociado.
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

// Report registra el problema tras reautenticar al empleado.
// Empleado inexistente → ErrNotFound; contraseña incorrecta → ErrAuth.
func (uc *UseCase) Report(ctx context.Context, reporterID, password, description string) (*entity.GeneralProblem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: descrição obrigatória", domain.ErrInvalidInput)
	}
	var problem *entity.GeneralProblem
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		emp, err := tx.Employees.GetByID(reporterID)
		if err != nil {
			return err
		}
		if emp.Password != password {
			return domain.ErrAuth
		}
		now := uc.clock.Now()
		problem = &entity.GeneralProblem{
			ID:           uuid.NewString(),
			Timestamp:    now,
			ReporterID:   emp.ID,
			ReporterName: emp.Name,
			Description:  description,
		}
		if err := tx.Problems.Save(problem); err != nil {
			return err
		}
		return audit.Record(tx.Audit, now, entity.Actor{ID: emp.ID, Name: emp.Name},
			entity.ActionGeneralProblemReported, problem.ID,
			fmt.Sprintf("Reportou um problema geral: %s", description))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("problem_id", problem.ID).Str("reporter", problem.ReporterName).Msg("problema geral reportado")
	uc.notifier.Push(entity.NotifyInfo, fmt.Sprintf("Novo problema reportado por %s.", problem.ReporterName))
	return problem, nil
}

// Resolve marca el problema como resuelto. Resolver dos veces no es error.
func (uc *UseCase) Resolve(ctx context.Context, id string) (*entity.GeneralProblem, error) {
	var problem *entity.GeneralProblem
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		p, err := tx.Problems.GetByID(id)
		if err != nil {
			return err
		}
		p.Resolved = true
		problem = p
		return tx.Problems.Save(p)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, "Problema marcado como resolvido.")
	return problem, nil
}

// List problemas del más reciente al más antiguo; onlyOpen filtra los no resueltos.
func (uc *UseCase) List(_ context.Context, onlyOpen bool) ([]*entity.GeneralProblem, error) {
	all, err := uc.repos.Problems.List()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.GeneralProblem, 0, len(all))
	for _, p := range all {
		if onlyOpen && p.Resolved {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
