// Package audit registra y consulta el historial de auditoría de la oficina.
package audit

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// TimestampLayout formato pt-BR usado en la exportación.
const TimestampLayout = "02/01/2006 15:04:05"

// Record agrega una entrada al repositorio (normalmente el de la transacción en curso).
func Record(repo repository.AuditRepository, now time.Time, actor entity.Actor, action entity.AuditAction, targetID, details string) error {
	return repo.Append(&entity.AuditLogEntry{
		ID:        uuid.NewString(),
		Timestamp: now,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Details:   details,
		TargetID:  targetID,
	})
}

// UseCase consulta y exportación de la auditoría.
type UseCase struct {
	repo repository.AuditRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.AuditRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List entradas filtradas, de la más reciente a la más antigua.
func (uc *UseCase) List(_ context.Context, filter repository.AuditFilter) ([]*entity.AuditLogEntry, error) {
	return uc.repo.List(filter)
}

// ExportCSV escribe las entradas filtradas con columnas Timestamp, Autor, Ação, Detalhes.
func (uc *UseCase) ExportCSV(ctx context.Context, filter repository.AuditFilter, w io.Writer) error {
	entries, err := uc.List(ctx, filter)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "Autor", "Ação", "Detalhes"}); err != nil {
		return fmt.Errorf("audit csv: %w", err)
	}
	for _, e := range entries {
		row := []string{e.Timestamp.Format(TimestampLayout), e.ActorName, string(e.Action), e.Details}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("audit csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
