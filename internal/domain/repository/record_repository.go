package repository

import (
	"time"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// AuditFilter filtros de la auditoría.
type AuditFilter struct {
	ActorID  string
	Action   entity.AuditAction
	From, To *time.Time
}

// AuditRepository puerto append-only de auditoría.
type AuditRepository interface {
	Append(entry *entity.AuditLogEntry) error
	// List del más reciente al más antiguo.
	List(filter AuditFilter) ([]*entity.AuditLogEntry, error)
}

// ProblemRepository puerto de problemas generales del portal de loja.
type ProblemRepository interface {
	GetByID(id string) (*entity.GeneralProblem, error)
	List() ([]*entity.GeneralProblem, error)
	Save(problem *entity.GeneralProblem) error
}
