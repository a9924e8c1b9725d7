package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus estado del presupuesto.
type BudgetStatus string

const (
	BudgetPending   BudgetStatus = "Pendente"
	BudgetApproved  BudgetStatus = "Aprovado"
	BudgetRejected  BudgetStatus = "Rejeitado"
	BudgetInService BudgetStatus = "Em Serviço"
)

// BudgetService línea de servicio cotizada.
type BudgetService struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// Budget presupuesto entregado al cliente. TotalValue = suma de Services.
type Budget struct {
	ID            string          `json:"id"`
	CreationDate  time.Time       `json:"creation_date"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	VehicleBrand  string          `json:"vehicle_brand"`
	VehicleModel  string          `json:"vehicle_model"`
	VehicleYear   int             `json:"vehicle_year"`
	VehiclePlate  string          `json:"vehicle_plate"`
	Services      []BudgetService `json:"services"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Status        BudgetStatus    `json:"status"`
	Images        []string        `json:"images,omitempty"` // data URLs
	CarID         string          `json:"car_id,omitempty"`
}

// SumServices total de las líneas.
func (b *Budget) SumServices() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Services {
		total = total.Add(s.Value)
	}
	return total
}

// Clone copia profunda.
func (b *Budget) Clone() *Budget {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Services = append([]BudgetService(nil), b.Services...)
	cp.Images = append([]string(nil), b.Images...)
	return &cp
}
