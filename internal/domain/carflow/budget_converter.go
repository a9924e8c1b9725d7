package carflow

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// ConvertBudgetToCar transforma un presupuesto aprobado en un carro nuevo en Desmontagem.
// No cambia el presupuesto ni protege contra doble conversión; eso queda en el caso de uso.
func ConvertBudgetToCar(b *entity.Budget, now time.Time, deliveryDays, exitDays int) *entity.Car {
	descriptions := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		if d := strings.TrimSpace(s.Description); d != "" {
			descriptions = append(descriptions, d)
		}
	}

	plate := NormalizePlate(b.VehiclePlate)
	images := make([]entity.Image, 0, len(b.Images))
	for i, raw := range b.Images {
		images = append(images, DecodeDataURL(raw, fmt.Sprintf("budget-photo-%s-%d.jpg", plate, i+1)))
	}

	customer := b.CustomerName
	if b.CustomerPhone != "" {
		customer = b.CustomerName + " / " + b.CustomerPhone
	}

	return &entity.Car{
		ID:              uuid.NewString(),
		Brand:           b.VehicleBrand,
		Model:           b.VehicleModel,
		Year:            b.VehicleYear,
		Plate:           plate,
		Customer:        customer,
		Description:     strings.Join(descriptions, "; "),
		Parts:           []entity.CarPart{},
		Images:          images,
		DeliveryDate:    now.AddDate(0, 0, deliveryDays),
		ExitDate:        now.AddDate(0, 0, exitDays),
		Status:          entity.CarStatusInProgress,
		CurrentStage:    entity.StageDisassembly,
		StageDetails:    entity.NewStageDetails(),
		ServiceValue:    b.TotalValue,
		AccumulatedCost: decimal.Zero,
		WorkLog:         []entity.WorkLogEntry{},
		CreatedAt:       now,
	}
}

// NormalizePlate placa sin espacios laterales y en mayúsculas.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// DecodeDataURL reconstruye la imagen de un data URL ("data:<mime>;base64,<datos>").
// Sin mime declarado se detecta por contenido; datos ilegibles producen una imagen vacía.
func DecodeDataURL(raw, fileName string) entity.Image {
	img := entity.Image{FileName: fileName}

	header, payload, found := strings.Cut(raw, ",")
	if !found {
		payload, header = raw, ""
	}
	if strings.HasPrefix(header, "data:") {
		meta := strings.TrimPrefix(header, "data:")
		img.MimeType, _, _ = strings.Cut(meta, ";")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		img.MimeType = "application/octet-stream"
		img.Data = []byte{}
		return img
	}
	img.Data = data
	if img.MimeType == "" {
		img.MimeType = mimetype.Detect(data).String()
	}
	return img
}
