package problems_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/application/notify"
	"github.com/jhoicas/oficina-manager/internal/application/problems"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/internal/infrastructure/memory"
	"github.com/jhoicas/oficina-manager/pkg/logger"
)

func setup(t *testing.T) (*problems.UseCase, repository.Set, *time.Time) {
	t.Helper()
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Employees.Save(&entity.Employee{ID: "e1", Name: "Joana", Role: entity.RoleWasher, EmployeeID: "L01", Password: "abc"}))
	uc := problems.NewUseCase(memory.NewTxRunner(store), repos, notify.NewCenter(0, clock), clock, logger.Nop())
	return uc, repos, &now
}

func TestReport(t *testing.T) {
	uc, repos, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		reporter string
		password string
		desc     string
		wantErr  error
	}{
		{"empleado inexistente", "nope", "abc", "Compressor parado", domain.ErrNotFound},
		{"contraseña incorrecta", "e1", "xyz", "Compressor parado", domain.ErrAuth},
		{"sin descripción", "e1", "abc", "  ", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Report(ctx, tt.reporter, tt.password, tt.desc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	all, _ := repos.Problems.List()
	assert.Empty(t, all)

	p, err := uc.Report(ctx, "e1", "abc", "Compressor parado")
	require.NoError(t, err)
	assert.Equal(t, "Joana", p.ReporterName)
	assert.False(t, p.Resolved)

	entries, _ := repos.Audit.List(repository.AuditFilter{Action: entity.ActionGeneralProblemReported})
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ActorID)
}

func TestResolveAndList(t *testing.T) {
	uc, _, now := setup(t)
	ctx := context.Background()

	first, err := uc.Report(ctx, "e1", "abc", "Falta de lixa")
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	second, err := uc.Report(ctx, "e1", "abc", "Cabine suja")
	require.NoError(t, err)

	list, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	_, err = uc.Resolve(ctx, first.ID)
	require.NoError(t, err)
	open, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)

	_, err = uc.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
