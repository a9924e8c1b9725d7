package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Car vehículo en la oficina y su avance por las etapas.
type Car struct {
	ID               string                        `json:"id"`
	Brand            string                        `json:"brand"`
	Model            string                        `json:"model"`
	Year             int                           `json:"year"`
	VIN              string                        `json:"vin"`
	Plate            string                        `json:"plate"`
	Customer         string                        `json:"customer"`
	Description      string                        `json:"description"`
	Parts            []CarPart                     `json:"parts"`
	Images           []Image                       `json:"images"`
	DeliveryDate     time.Time                     `json:"delivery_date"`
	ExitDate         time.Time                     `json:"exit_date"`
	Status           CarStatus                     `json:"status"`
	CurrentStage     ServiceStage                  `json:"current_stage"`
	StageDetails     map[ServiceStage]*StageDetail `json:"stage_details"`
	ServiceValue     decimal.Decimal               `json:"service_value"`
	AccumulatedCost  decimal.Decimal               `json:"accumulated_cost"`
	WorkLog          []WorkLogEntry                `json:"work_log"`
	HasUnreadUpdate  bool                          `json:"has_unread_update"`
	HasProblemReport bool                          `json:"has_problem_report"`
	CreatedAt        time.Time                     `json:"created_at"`
}

// CarPart pieza marcada en la recepción del carro.
type CarPart struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// Image archivo adjunto (foto de recepción o de presupuesto).
type Image struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// StageDetail fotos, gastos y datos específicos registrados en una etapa.
type StageDetail struct {
	Photos   []string        `json:"photos"`
	Expenses decimal.Decimal `json:"expenses"`
	Details  *StageData      `json:"details,omitempty"`
}

// NewStageDetails crea el mapa con todas las etapas vacías.
func NewStageDetails() map[ServiceStage]*StageDetail {
	m := make(map[ServiceStage]*StageDetail, len(Stages))
	for _, s := range Stages {
		m[s] = &StageDetail{Photos: []string{}}
	}
	return m
}

// StageIndex índice de la etapa actual.
func (c *Car) StageIndex() int { return c.CurrentStage.Index() }

// OpenProblems cantidad de reportes de problema sin resolver.
func (c *Car) OpenProblems() int {
	n := 0
	for _, e := range c.WorkLog {
		if e.Note != nil && e.Note.IsOpenProblem() {
			n++
		}
	}
	return n
}

// Clone copia profunda; el estado nunca comparte slices ni mapas con quien lo lee.
func (c *Car) Clone() *Car {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Parts = append([]CarPart(nil), c.Parts...)
	cp.Images = make([]Image, len(c.Images))
	for i, img := range c.Images {
		img.Data = append([]byte(nil), img.Data...)
		cp.Images[i] = img
	}
	cp.StageDetails = make(map[ServiceStage]*StageDetail, len(c.StageDetails))
	for k, d := range c.StageDetails {
		if d == nil {
			continue
		}
		dd := *d
		dd.Photos = append([]string(nil), d.Photos...)
		if d.Details != nil {
			dd.Details = d.Details.Clone()
		}
		cp.StageDetails[k] = &dd
	}
	cp.WorkLog = make([]WorkLogEntry, len(c.WorkLog))
	for i, e := range c.WorkLog {
		cp.WorkLog[i] = e.Clone()
	}
	return &cp
}
