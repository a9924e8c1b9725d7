package carflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/application/carflow"
	"github.com/jhoicas/oficina-manager/internal/application/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock del notificador
// ──────────────────────────────────────────────────────────────────────────────

type notifierMock struct{ mock.Mock }

func (m *notifierMock) Push(kind entity.NotificationType, message string) entity.Notification {
	m.Called(kind, message)
	return entity.Notification{Type: kind, Message: message}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var admin = entity.Actor{ID: "admin@oficina.com", Name: "Admin"}

type fixture struct {
	repos    repository.Set
	uc       *carflow.UseCase
	notifier *notifierMock
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		repos:    store.Repos(),
		notifier: &notifierMock{},
		now:      time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	tx := memory.NewTxRunner(store)
	stock := inventory.NewStockUseCase(tx, f.repos, f.notifier, clock, zerolog.Nop())
	f.uc = carflow.NewUseCase(tx, f.repos, nil, stock, f.notifier, clock, zerolog.Nop())

	require.NoError(t, f.repos.Employees.Save(&entity.Employee{
		ID: "e1", Name: "Carlos", Role: entity.RolePainter, EmployeeID: "FUNC01", Password: "1234",
	}))
	for _, it := range []*entity.StockItem{
		{ID: "s-massa", Name: "Massa Poliéster", Unit: entity.UnitGrams, CurrentQuantity: d("1000"), MinimumQuantity: d("200"), UnitPrice: d("0.02")},
		{ID: "s-tinta", Name: "Tinta Metálica Azul", Unit: entity.UnitLiters, CurrentQuantity: d("3"), MinimumQuantity: d("1"), UnitPrice: d("200")},
		{ID: "s-lixa", Name: "Lixa 80", Unit: entity.UnitUnits, CurrentQuantity: d("20"), MinimumQuantity: d("5"), UnitPrice: d("2.50")},
	} {
		require.NoError(t, f.repos.Stock.Save(it))
	}
	return f
}

func (f *fixture) addCar(t *testing.T) *entity.Car {
	t.Helper()
	f.notifier.On("Push", entity.NotifySuccess, "Carro ABC1D23 adicionado.").Once()
	car, err := f.uc.AddCar(context.Background(), carflow.AddCarInput{
		Brand: "Fiat", Model: "Uno", Year: 2015, Plate: "abc1d23", Customer: "Maria",
		ServiceValue: d("1500"), Actor: admin,
	})
	require.NoError(t, err)
	return car
}

func (f *fixture) complete(t *testing.T, carID string, data *entity.StageData) *entity.Car {
	t.Helper()
	f.notifier.On("Push", entity.NotifySuccess, mock.Anything).Once()
	car, err := f.uc.CompleteStage(context.Background(), carflow.CompleteStageInput{
		CarID: carID, EmployeeID: "e1", AuthPassword: "1234", Data: data,
	})
	require.NoError(t, err)
	return car
}

func (f *fixture) qty(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := f.repos.Stock.GetByID(id)
	require.NoError(t, err)
	return it.CurrentQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteStage
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCar_PrimeraEtapa(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)

	assert.Equal(t, "ABC1D23", car.Plate)
	assert.Equal(t, entity.StageDisassembly, car.CurrentStage)
	assert.Equal(t, entity.CarStatusInProgress, car.Status)
	assert.Len(t, car.StageDetails, len(entity.Stages))

	entries, _ := f.repos.Audit.List(repository.AuditFilter{Action: entity.ActionCarAdded})
	assert.Len(t, entries, 1)
	f.notifier.AssertExpectations(t)
}

func TestCompleteStage_DescuentaMaterialesYAudita(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)

	f.complete(t, car.ID, nil) // Desmontagem sin datos
	f.notifier.On("Push", entity.NotifySuccess, "Etapa 'Reparo e Primer' do carro ABC1D23 concluída.").Once()
	updated, err := f.uc.CompleteStage(context.Background(), carflow.CompleteStageInput{
		CarID: car.ID, EmployeeID: "e1", AuthPassword: "1234",
		Data: &entity.StageData{
			PuttyGrams:  d("200"),
			Consumables: []entity.ConsumableUse{{Name: "lixa 80", Quantity: d("2")}, {Name: "Fita crepe", Quantity: d("1")}},
		},
	})
	require.NoError(t, err)

	// 200 g × 0.02 + 2 × 2.50 = 9.00
	assert.True(t, updated.AccumulatedCost.Equal(d("9")), updated.AccumulatedCost.String())
	assert.Equal(t, entity.StageSanding, updated.CurrentStage)
	assert.True(t, f.qty(t, "s-massa").Equal(d("800")))
	assert.True(t, f.qty(t, "s-lixa").Equal(d("18")))

	movs, err := f.repos.Movements.List(repository.MovementFilter{CarID: car.ID})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.ReasonServiceUse, m.Reason)
		assert.Equal(t, entity.DirectionOut, m.Direction)
		assert.Equal(t, "ABC1D23", m.RelatedCarPlate)
		assert.Equal(t, entity.StageRepair, m.RelatedStage)
		assert.Equal(t, "e1", m.CreatedBy)
	}

	entries, _ := f.repos.Audit.List(repository.AuditFilter{Action: entity.ActionStageCompleted})
	require.Len(t, entries, 2)
	assert.Equal(t, "Concluiu a etapa 'Reparo e Primer' para o carro ABC1D23. Custo: R$ 9,00.", entries[0].Details)
	assert.Equal(t, "Carlos", entries[0].ActorName)
	f.notifier.AssertExpectations(t)
}

func TestCompleteStage_PinturaConvierteMlALitros(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)
	for i := 0; i < 3; i++ {
		f.complete(t, car.ID, nil)
	}

	updated := f.complete(t, car.ID, &entity.StageData{PaintML: d("500"), VarnishML: d("100")})

	// 0.5 L × 200 = 100; el verniz no existe en el stock
	assert.True(t, updated.AccumulatedCost.Equal(d("100")), updated.AccumulatedCost.String())
	assert.True(t, f.qty(t, "s-tinta").Equal(d("2.5")), f.qty(t, "s-tinta").String())
	movs, _ := f.repos.Movements.List(repository.MovementFilter{CarID: car.ID})
	require.Len(t, movs, 1, "material inexistente se omite")
	assert.True(t, movs[0].Quantity.Equal(d("0.5")))
}

func TestCompleteStage_ContrasenaIncorrecta_NoCambiaNada(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)

	_, err := f.uc.CompleteStage(context.Background(), carflow.CompleteStageInput{
		CarID: car.ID, EmployeeID: "e1", AuthPassword: "errada",
		Data: &entity.StageData{HasBrokenPart: true, BrokenPart: &entity.BrokenPart{Name: "Farol", Cost: d("300")}},
	})
	assert.ErrorIs(t, err, domain.ErrAuth)

	stored, err := f.uc.GetCar(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageDisassembly, stored.CurrentStage)
	assert.Empty(t, stored.WorkLog)
	assert.True(t, stored.AccumulatedCost.IsZero())

	entries, _ := f.repos.Audit.List(repository.AuditFilter{Action: entity.ActionStageCompleted})
	assert.Empty(t, entries)
	f.notifier.AssertNotCalled(t, "Push", entity.NotifySuccess, mock.MatchedBy(func(s string) bool { return s != "Carro ABC1D23 adicionado." }))
}

func TestCompleteStage_UltimaEtapaConcluye(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)
	var last *entity.Car
	for range entity.Stages {
		last = f.complete(t, car.ID, nil)
	}
	assert.Equal(t, entity.CarStatusCompleted, last.Status)
	assert.Equal(t, f.now, last.ExitDate)

	_, err := f.uc.CompleteStage(context.Background(), carflow.CompleteStageInput{CarID: car.ID, EmployeeID: "e1", AuthPassword: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// RevertStage y problemas
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertStage_PrimeraEtapa_Rechazada(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)
	f.notifier.On("Push", entity.NotifyError, "Não é possível reverter a primeira etapa.").Once()

	_, err := f.uc.RevertStage(context.Background(), car.ID, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := f.uc.GetCar(context.Background(), car.ID)
	assert.Equal(t, entity.StageDisassembly, stored.CurrentStage)
	f.notifier.AssertExpectations(t)
}

func TestRevertStage_ConservaCostoEHistorial(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)
	f.complete(t, car.ID, nil)
	done := f.complete(t, car.ID, &entity.StageData{PuttyGrams: d("100")})
	f.notifier.On("Push", entity.NotifyInfo, mock.Anything).Once()

	reverted, err := f.uc.RevertStage(context.Background(), car.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, entity.StageRepair, reverted.CurrentStage)
	assert.True(t, reverted.AccumulatedCost.Equal(done.AccumulatedCost))
	assert.Len(t, reverted.WorkLog, len(done.WorkLog))
	assert.False(t, reverted.HasUnreadUpdate)

	entries, _ := f.repos.Audit.List(repository.AuditFilter{Action: entity.ActionStageReverted})
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Details, "Histórico e custos foram mantidos")
}

func TestReportAndResolveProblem(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)
	f.notifier.On("Push", entity.NotifyInfo, mock.Anything).Once()

	reported, err := f.uc.ReportProblem(context.Background(), car.ID, admin, "  Amassado extra na porta ")
	require.NoError(t, err)
	assert.True(t, reported.HasProblemReport)
	entry := reported.WorkLog[len(reported.WorkLog)-1]
	assert.Equal(t, "Amassado extra na porta", entry.Note.Text)

	resolved, err := f.uc.ResolveProblem(context.Background(), car.ID, entry.ID, admin)
	require.NoError(t, err)
	assert.False(t, resolved.HasProblemReport)

	_, err = f.uc.ReportProblem(context.Background(), car.ID, admin, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkReadYFotos(t *testing.T) {
	f := newFixture(t)
	car := f.addCar(t)

	withPhotos, err := f.uc.AddStagePhotos(context.Background(), car.ID, []string{"data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.True(t, withPhotos.HasUnreadUpdate)
	assert.Len(t, withPhotos.StageDetails[entity.StageDisassembly].Photos, 1)

	read, err := f.uc.MarkRead(context.Background(), car.ID)
	require.NoError(t, err)
	assert.False(t, read.HasUnreadUpdate)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListCars
// ──────────────────────────────────────────────────────────────────────────────

func TestListCars_HistoricoPorPeriodo(t *testing.T) {
	f := newFixture(t)
	old := f.addCar(t)
	for range entity.Stages {
		f.complete(t, old.ID, nil)
	}
	f.now = f.now.AddDate(0, 2, 0) // 10/05/2026
	recent := f.addCar(t)
	for range entity.Stages {
		f.complete(t, recent.ID, nil)
	}
	open := f.addCar(t)
	ctx := context.Background()

	inProgress, err := f.uc.ListCars(ctx, carflow.ListFilter{View: carflow.ViewInProgress})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, open.ID, inProgress[0].ID)

	all, err := f.uc.ListCars(ctx, carflow.ListFilter{View: carflow.ViewHistory})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	month, err := f.uc.ListCars(ctx, carflow.ListFilter{View: carflow.ViewHistory, Period: carflow.PeriodMonth})
	require.NoError(t, err)
	require.Len(t, month, 1)
	assert.Equal(t, recent.ID, month[0].ID)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	custom, err := f.uc.ListCars(ctx, carflow.ListFilter{View: carflow.ViewHistory, Period: carflow.PeriodCustom, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, old.ID, custom[0].ID)

	_, err = f.uc.ListCars(ctx, carflow.ListFilter{View: "garagem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryRange_SemanaEmpiezaDomingo(t *testing.T) {
	wed := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)
	start, end, err := carflow.HistoryRange(carflow.PeriodWeek, wed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, wed, end)

	_, _, err = carflow.HistoryRange("decada", wed, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
