package carflow

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

func approvedBudget() *entity.Budget {
	return &entity.Budget{
		ID: "b1", CustomerName: "Ana Souza", CustomerPhone: "11 99999-0000",
		VehicleBrand: "Fiat", VehicleModel: "Uno", VehicleYear: 2015, VehiclePlate: "XYZ9A87",
		Services: []entity.BudgetService{
			{ID: "s1", Description: "Funilaria porta", Value: d("800")},
			{ID: "s2", Description: "Pintura completa", Value: d("1200")},
		},
		TotalValue: d("2000"),
		Status:     entity.BudgetApproved,
	}
}

func TestConvertBudgetToCar(t *testing.T) {
	b := approvedBudget()
	car := ConvertBudgetToCar(b, now, 7, 14)

	assert.NotEmpty(t, car.ID)
	assert.Equal(t, "Ana Souza / 11 99999-0000", car.Customer)
	assert.Equal(t, "Funilaria porta; Pintura completa", car.Description)
	assert.Equal(t, entity.StageDisassembly, car.CurrentStage)
	assert.Equal(t, entity.CarStatusInProgress, car.Status)
	assert.True(t, car.ServiceValue.Equal(d("2000")))
	assert.True(t, car.AccumulatedCost.IsZero())
	assert.Equal(t, now.AddDate(0, 0, 7), car.DeliveryDate)
	assert.Equal(t, now.AddDate(0, 0, 14), car.ExitDate)
	assert.Len(t, car.StageDetails, len(entity.Stages))
	// el presupuesto no cambia en la transformación
	assert.Equal(t, entity.BudgetApproved, b.Status)
}

func TestConvertBudgetToCar_NormalizaPlaca(t *testing.T) {
	b := approvedBudget()
	b.VehiclePlate = "  xyz9a87 "
	b.Images = []string{"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("foto"))}

	car := ConvertBudgetToCar(b, now, 7, 14)
	assert.Equal(t, "XYZ9A87", car.Plate)
	require.Len(t, car.Images, 1)
	assert.Equal(t, "budget-photo-XYZ9A87-1.jpg", car.Images[0].FileName)
	assert.Equal(t, "  xyz9a87 ", b.VehiclePlate)
}

func TestConvertBudgetToCar_Imagenes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	b := approvedBudget()
	b.Images = []string{
		"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("foto")),
		"data:;base64," + base64.StdEncoding.EncodeToString(png),
		"data:image/jpeg;base64,@@@nao-e-base64@@@",
	}

	car := ConvertBudgetToCar(b, now, 7, 14)
	require.Len(t, car.Images, 3)

	assert.Equal(t, "budget-photo-XYZ9A87-1.jpg", car.Images[0].FileName)
	assert.Equal(t, "image/jpeg", car.Images[0].MimeType)
	assert.Equal(t, []byte("foto"), car.Images[0].Data)

	assert.Equal(t, "image/png", car.Images[1].MimeType)

	assert.Equal(t, "application/octet-stream", car.Images[2].MimeType)
	assert.Empty(t, car.Images[2].Data)
}
