package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/application/budget"
	"github.com/jhoicas/oficina-manager/internal/application/notify"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/internal/infrastructure/memory"
)

type docsMock struct{ mock.Mock }

func (m *docsMock) BudgetPDF(ctx context.Context, p *entity.WorkshopProfile, b *entity.Budget) ([]byte, error) {
	args := m.Called(ctx, p, b)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *docsMock) InvoicePDF(context.Context, *entity.WorkshopProfile, *entity.IssuedInvoice, *entity.Car) ([]byte, error) {
	return nil, nil
}

func (m *docsMock) PaymentReceiptPDF(context.Context, *entity.WorkshopProfile, *entity.PaymentRecord, *entity.Employee) ([]byte, error) {
	return nil, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var admin = entity.Actor{ID: "admin@oficina.com", Name: "Admin"}

var now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*budget.UseCase, repository.Set, *docsMock) {
	t.Helper()
	store := memory.NewStore()
	clock := func() time.Time { return now }
	docs := &docsMock{}
	uc := budget.NewUseCase(memory.NewTxRunner(store), store.Repos(), docs,
		notify.NewCenter(0, clock), clock, budget.Rules{DeliveryDays: 7, ExitDays: 14}, zerolog.Nop())
	return uc, store.Repos(), docs
}

func validInput() budget.Input {
	return budget.Input{
		CustomerName: "João", CustomerPhone: "11 99999-0000",
		VehicleBrand: "VW", VehicleModel: "Gol", VehicleYear: 2018, VehiclePlate: "xyz9a87",
		Services: []entity.BudgetService{
			{Description: "Funilaria porta", Value: d("800")},
			{Description: "Pintura porta", Value: d("650.50")},
		},
		Actor: admin,
	}
}

func TestCreate_TotalEsSumaYPendente(t *testing.T) {
	uc, _, _ := setup(t)
	b, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, entity.BudgetPending, b.Status)
	assert.True(t, b.TotalValue.Equal(d("1450.50")))
	assert.Equal(t, "XYZ9A87", b.VehiclePlate)
	for _, s := range b.Services {
		assert.NotEmpty(t, s.ID)
	}
}

func TestCreate_Invalidos(t *testing.T) {
	uc, _, _ := setup(t)
	cases := map[string]func(*budget.Input){
		"sin servicios":  func(in *budget.Input) { in.Services = nil },
		"valor cero":     func(in *budget.Input) { in.Services[0].Value = decimal.Zero },
		"valor negativo": func(in *budget.Input) { in.Services[1].Value = d("-1") },
		"sin cliente":    func(in *budget.Input) { in.CustomerName = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateStatus_SoloDesdePendente(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	b, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, b.ID, entity.BudgetInService, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	rejected, err := uc.UpdateStatus(ctx, b.ID, entity.BudgetRejected, admin)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetRejected, rejected.Status)

	_, err = uc.UpdateStatus(ctx, b.ID, entity.BudgetApproved, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateDetails(ctx, b.ID, validInput())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConvertToCar(t *testing.T) {
	uc, repos, _ := setup(t)
	ctx := context.Background()
	in := validInput()
	in.Images = []string{"data:image/png;base64,iVBORw0KGgo="}
	b, err := uc.Create(ctx, in)
	require.NoError(t, err)

	_, err = uc.ConvertToCar(ctx, b.ID, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pendente no convierte")

	_, err = uc.UpdateStatus(ctx, b.ID, entity.BudgetApproved, admin)
	require.NoError(t, err)
	car, err := uc.ConvertToCar(ctx, b.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, entity.StageDisassembly, car.CurrentStage)
	assert.Equal(t, entity.CarStatusInProgress, car.Status)
	assert.True(t, car.ServiceValue.Equal(d("1450.50")))
	assert.Equal(t, now.AddDate(0, 0, 7), car.DeliveryDate)
	assert.Equal(t, now.AddDate(0, 0, 14), car.ExitDate)
	assert.Equal(t, "Funilaria porta; Pintura porta", car.Description)
	require.Len(t, car.Images, 1)
	assert.Equal(t, "image/png", car.Images[0].MimeType)

	stored, err := uc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetInService, stored.Status)
	assert.Equal(t, car.ID, stored.CarID)

	_, err = repos.Cars.GetByID(car.ID)
	require.NoError(t, err)

	// segunda conversión rechazada
	_, err = uc.ConvertToCar(ctx, b.ID, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	converted, _ := repos.Audit.List(repository.AuditFilter{Action: entity.ActionBudgetConverted})
	assert.Len(t, converted, 1)

	inService, err := uc.List(ctx, entity.BudgetInService)
	require.NoError(t, err)
	assert.Len(t, inService, 1)
}

func TestPDF_UsaPerfil(t *testing.T) {
	uc, repos, docs := setup(t)
	ctx := context.Background()
	require.NoError(t, repos.Profile.Save(&entity.WorkshopProfile{Name: "Oficina Central"}))
	b, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	docs.On("BudgetPDF", ctx, mock.MatchedBy(func(p *entity.WorkshopProfile) bool { return p.Name == "Oficina Central" }),
		mock.MatchedBy(func(got *entity.Budget) bool { return got.ID == b.ID })).
		Return([]byte("%PDF"), nil).Once()

	out, err := uc.PDF(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	docs.AssertExpectations(t)
}
