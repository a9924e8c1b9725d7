package carflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func testStock() Catalog {
	return Catalog{
		{ID: "s1", Name: "Lixa 80", Unit: entity.UnitUnits, UnitPrice: d("2.50")},
		{ID: "s2", Name: "Primer PU", Unit: entity.UnitUnits, UnitPrice: d("45.00")},
		{ID: "s3", Name: "Massa Poliéster", Unit: entity.UnitGrams, UnitPrice: d("0.02")},
		{ID: "s4", Name: "Tinta Metálica Azul", Unit: entity.UnitLiters, UnitPrice: d("200")},
		{ID: "s5", Name: "Verniz HS", Unit: entity.UnitML, UnitPrice: d("0.10")},
	}
}

func newCar() *entity.Car {
	return &entity.Car{
		ID: "car-1", Plate: "ABC1D23",
		Status:          entity.CarStatusInProgress,
		CurrentStage:    entity.StageDisassembly,
		StageDetails:    entity.NewStageDetails(),
		AccumulatedCost: decimal.Zero,
	}
}

func painter() *entity.Employee {
	return &entity.Employee{ID: "e1", Name: "Carlos", Role: entity.RolePainter, EmployeeID: "FUNC01", Password: "1234"}
}

func complete(t *testing.T, m *Machine, car *entity.Car, data *entity.StageData) CompletionResult {
	t.Helper()
	res, err := m.CompleteStage(car, Completion{Employee: painter(), AuthPassword: "1234", Data: data, Now: now}, testStock())
	require.NoError(t, err)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteStage
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteStage_AvanzaYAcumulaCosto(t *testing.T) {
	m := NewMachine(nil)
	m.costs.Register(entity.StageDisassembly, func(*entity.StageData, PriceLookup) StageCost {
		return StageCost{Cost: d("55.50")}
	})

	car := newCar()
	res := complete(t, m, car, &entity.StageData{})

	assert.Equal(t, entity.StageRepair, res.Car.CurrentStage)
	assert.Equal(t, 1, res.Car.StageIndex())
	assert.True(t, res.Car.AccumulatedCost.Equal(d("55.50")))
	require.Len(t, res.Car.WorkLog, 1)
	require.NotNil(t, res.Car.WorkLog[0].Cost)
	assert.True(t, res.Car.WorkLog[0].Cost.Equal(d("55.50")))
	assert.True(t, res.Car.HasUnreadUpdate)

	// el carro original no se toca
	assert.Equal(t, entity.StageDisassembly, car.CurrentStage)
	assert.Empty(t, car.WorkLog)
}

func TestCompleteStage_ContrasenaIncorrecta(t *testing.T) {
	m := NewMachine(nil)
	car := newCar()
	_, err := m.CompleteStage(car, Completion{Employee: painter(), AuthPassword: "errada", Now: now}, testStock())
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, entity.StageDisassembly, car.CurrentStage)
}

func TestCompleteStage_SinEmpleado(t *testing.T) {
	_, err := NewMachine(nil).CompleteStage(newCar(), Completion{Now: now}, testStock())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompleteStage_CarroConcluido(t *testing.T) {
	car := newCar()
	car.Status = entity.CarStatusCompleted
	car.CurrentStage = entity.StageWashing
	_, err := NewMachine(nil).CompleteStage(car, Completion{Employee: painter(), AuthPassword: "1234"}, testStock())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompleteStage_FlujoCompleto(t *testing.T) {
	m := NewMachine(nil)
	car := newCar()
	total := decimal.Zero

	stageData := []*entity.StageData{
		{HasBrokenPart: true, BrokenPart: &entity.BrokenPart{Name: "Farol", Cost: d("150")}},
		{Consumables: []entity.ConsumableUse{{Name: "lixa 80", Quantity: d("2")}, {Name: "Primer PU", Quantity: d("1")}}, PuttyGrams: d("300")},
		{Consumables: []entity.ConsumableUse{{Name: "Lixa 80", Quantity: d("4")}}},
		{PaintML: d("500"), VarnishML: d("200")},
		{PolishingDone: true},
		{WashingDone: true},
	}
	for i, data := range stageData {
		require.Equal(t, i, car.StageIndex())
		res := complete(t, m, car, data)
		total = total.Add(res.Cost)
		car = res.Car
		assert.True(t, car.AccumulatedCost.Equal(total))
	}

	assert.Equal(t, entity.CarStatusCompleted, car.Status)
	assert.Equal(t, entity.StageWashing, car.CurrentStage)
	assert.True(t, car.ExitDate.Equal(now))
	// 150 + (5 + 45 + 6) + 10 + (100 + 20)
	assert.True(t, car.AccumulatedCost.Equal(d("336")), car.AccumulatedCost.String())
}

func TestCompleteStage_PiezaQuebrada_GeneraProblema(t *testing.T) {
	res := complete(t, NewMachine(nil), newCar(), &entity.StageData{
		HasBrokenPart: true, BrokenPart: &entity.BrokenPart{Name: "Para-choque", Cost: d("320")},
	})

	require.Len(t, res.Car.WorkLog, 2)
	problem := res.Car.WorkLog[1].Note
	require.NotNil(t, problem)
	assert.True(t, problem.IsOpenProblem())
	assert.Contains(t, problem.Text, "Peça quebrada - Para-choque")
	assert.Contains(t, problem.Text, "R$ 320,00")
	assert.True(t, res.Car.HasProblemReport)
	assert.True(t, res.Cost.Equal(d("320")))
}

func TestCompleteStage_MaterialesADescontar(t *testing.T) {
	car := newCar()
	car.CurrentStage = entity.StageRepair
	res := complete(t, NewMachine(nil), car, &entity.StageData{
		Consumables: []entity.ConsumableUse{
			{Name: "Primer PU", Quantity: d("1")},
			{Name: "Inexistente", Quantity: d("3")},
		},
		PuttyGrams: d("250"),
	})

	require.Len(t, res.MaterialsToDeduct, 2)
	assert.Equal(t, "Primer PU", res.MaterialsToDeduct[0].Name)
	assert.Equal(t, entity.UnitUnits, res.MaterialsToDeduct[0].Unit)
	assert.Equal(t, MaterialPutty, res.MaterialsToDeduct[1].Name)
	assert.Equal(t, entity.UnitGrams, res.MaterialsToDeduct[1].Unit)
	// 45 + 250*0.02
	assert.True(t, res.Cost.Equal(d("50")))

	detail := res.Car.StageDetails[entity.StageRepair]
	assert.True(t, detail.Expenses.Equal(d("50")))
	require.NotNil(t, detail.Details)
	assert.True(t, detail.Details.PuttyGrams.Equal(d("250")))
}

func TestCompleteStage_PinturaConvierteMlALitros(t *testing.T) {
	car := newCar()
	car.CurrentStage = entity.StagePainting
	res := complete(t, NewMachine(nil), car, &entity.StageData{PaintML: d("150")})

	// 0,15 L * 200
	assert.True(t, res.Cost.Equal(d("30")))
	require.Len(t, res.MaterialsToDeduct, 1)
	assert.Equal(t, entity.UnitML, res.MaterialsToDeduct[0].Unit)
}

func TestCompleteStage_ComentarioYFotos(t *testing.T) {
	m := NewMachine(nil)
	res, err := m.CompleteStage(newCar(), Completion{
		Employee: painter(), AuthPassword: "1234",
		Comments: "  tudo certo ", Photos: []string{"data:image/png;base64,AAA="}, Now: now,
	}, nil)
	require.NoError(t, err)

	entry := res.Car.WorkLog[0]
	require.NotNil(t, entry.Note)
	assert.Equal(t, entity.NoteComment, entry.Note.Kind)
	assert.Equal(t, "tudo certo", entry.Note.Text)
	assert.Len(t, res.Car.StageDetails[entity.StageDisassembly].Photos, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// RevertStage / MarkRead / problemas
// ──────────────────────────────────────────────────────────────────────────────

func TestRevertStage_PrimeraEtapaRechazada(t *testing.T) {
	car := newCar()
	_, err := RevertStage(car)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StageDisassembly, car.CurrentStage)
}

func TestRevertStage_MantieneCostoEHistorial(t *testing.T) {
	m := NewMachine(nil)
	res := complete(t, m, newCar(), &entity.StageData{HasBrokenPart: true, BrokenPart: &entity.BrokenPart{Name: "Farol", Cost: d("80")}})
	before := res.Car

	after, err := RevertStage(before)
	require.NoError(t, err)

	assert.Equal(t, entity.StageDisassembly, after.CurrentStage)
	assert.Equal(t, entity.CarStatusInProgress, after.Status)
	assert.False(t, after.HasUnreadUpdate)
	assert.True(t, after.AccumulatedCost.Equal(before.AccumulatedCost))
	assert.Len(t, after.WorkLog, len(before.WorkLog))
}

func TestRevertStage_DesdeConcluido(t *testing.T) {
	car := newCar()
	car.Status = entity.CarStatusCompleted
	car.CurrentStage = entity.StageWashing

	after, err := RevertStage(car)
	require.NoError(t, err)
	assert.Equal(t, entity.StagePolishing, after.CurrentStage)
	assert.Equal(t, entity.CarStatusInProgress, after.Status)
}

func TestMarkRead(t *testing.T) {
	car := newCar()
	car.HasUnreadUpdate, car.HasProblemReport = true, true
	after := MarkRead(car)
	assert.False(t, after.HasUnreadUpdate)
	assert.False(t, after.HasProblemReport)
	assert.True(t, car.HasUnreadUpdate)
}

func TestReportAndResolveProblem(t *testing.T) {
	actor := entity.Actor{ID: "e1", Name: "Carlos"}
	car, err := ReportProblem(newCar(), actor, "Parafuso espanado", now)
	require.NoError(t, err)
	car, err = ReportProblem(car, actor, "Risco na porta", now)
	require.NoError(t, err)
	assert.True(t, car.HasProblemReport)
	assert.Equal(t, 2, car.OpenProblems())

	car, err = ResolveProblem(car, car.WorkLog[0].ID)
	require.NoError(t, err)
	assert.True(t, car.HasProblemReport, "ainda há um problema aberto")

	car, err = ResolveProblem(car, car.WorkLog[1].ID)
	require.NoError(t, err)
	assert.False(t, car.HasProblemReport)

	_, err = ResolveProblem(car, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ReportProblem(car, actor, "   ", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddStagePhotos(t *testing.T) {
	car, err := AddStagePhotos(newCar(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, car.StageDetails[entity.StageDisassembly].Photos, 2)

	_, err = AddStagePhotos(newCar(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registry
// ──────────────────────────────────────────────────────────────────────────────

func TestCostRegistry_EtapaSinEstrategia(t *testing.T) {
	r := &CostRegistry{strategies: map[entity.ServiceStage]CostStrategy{}}
	res := r.Compute(entity.StagePainting, &entity.StageData{PaintML: d("100")}, testStock())
	assert.True(t, res.Cost.IsZero())
}

func TestCostRegistry_Polimento(t *testing.T) {
	res := NewCostRegistry().Compute(entity.StagePolishing, &entity.StageData{PolishingDone: true}, testStock())
	assert.True(t, res.Cost.IsZero())
	assert.Empty(t, res.Materials)
}
