package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// ImageUpload imagen enviada como data URL.
type ImageUpload struct {
	FileName string `json:"file_name"`
	DataURL  string `json:"data_url"`
}

// CarRequest body para POST /api/cars.
type CarRequest struct {
	Brand        string           `json:"brand"`
	Model        string           `json:"model"`
	Year         int              `json:"year"`
	VIN          string           `json:"vin"`
	Plate        string           `json:"plate"`
	Customer     string           `json:"customer"`
	Description  string           `json:"description"`
	Parts        []entity.CarPart `json:"parts"`
	Images       []ImageUpload    `json:"images"`
	DeliveryDate time.Time        `json:"delivery_date"`
	ExitDate     time.Time        `json:"exit_date"`
	ServiceValue decimal.Decimal  `json:"service_value"`
}

// CompleteStageRequest body del portal de loja al concluir la etapa actual.
// EmployeeID vacío usa el empleado de la sesión.
type CompleteStageRequest struct {
	EmployeeID string            `json:"employee_id,omitempty"`
	Password   string            `json:"password"`
	Comments   string            `json:"comments,omitempty"`
	Photos     []string          `json:"photos,omitempty"`
	Data       *entity.StageData `json:"data,omitempty"`
}

// TextRequest cuerpo con un único texto (reporte de problema).
type TextRequest struct {
	Text string `json:"text"`
}

// PhotosRequest fotos (data URLs) para la etapa actual.
type PhotosRequest struct {
	Photos []string `json:"photos"`
}

// GeneralProblemRequest problema general reportado desde la loja.
type GeneralProblemRequest struct {
	Password    string `json:"password"`
	Description string `json:"description"`
}

// BudgetRequest body de alta/edición de presupuesto.
type BudgetRequest struct {
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	CustomerEmail string                 `json:"customer_email,omitempty"`
	VehicleBrand  string                 `json:"vehicle_brand"`
	VehicleModel  string                 `json:"vehicle_model"`
	VehicleYear   int                    `json:"vehicle_year"`
	VehiclePlate  string                 `json:"vehicle_plate"`
	Services      []entity.BudgetService `json:"services"`
	Images        []string               `json:"images,omitempty"`
}

// BudgetStatusRequest cambio de estado del presupuesto.
type BudgetStatusRequest struct {
	Status string `json:"status"`
}

// EmployeeRequest alta de empleado.
type EmployeeRequest struct {
	Name       string           `json:"name"`
	Role       string           `json:"role"`
	Phone      string           `json:"phone"`
	EmployeeID string           `json:"employee_id"`
	Password   string           `json:"password"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
}

// EmployeeUpdateRequest campos editables; nil = sin cambio.
type EmployeeUpdateRequest struct {
	Name       *string          `json:"name,omitempty"`
	Role       *string          `json:"role,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	EmployeeID *string          `json:"employee_id,omitempty"`
	Password   *string          `json:"password,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
}

// PaymentRequest pago de salario o vale. Salário sin monto paga el saldo del mes.
type PaymentRequest struct {
	EmployeeID string           `json:"employee_id"`
	Type       string           `json:"type"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// ExpenseRequest alta de gasto fijo o compra puntual.
type ExpenseRequest struct {
	Name              string          `json:"name"`
	MonthlyCost       decimal.Decimal `json:"monthly_cost"`
	IsOneTimePurchase bool            `json:"is_one_time_purchase"`
	PurchaseDate      *time.Time      `json:"purchase_date,omitempty"`
	InvoiceImage      string          `json:"invoice_image,omitempty"`
}

// InvoiceRequest emisión de nota de servicio; TotalValue nil usa el valor del carro.
type InvoiceRequest struct {
	CarID        string           `json:"car_id"`
	Description  string           `json:"description,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	InvoiceImage string           `json:"invoice_image,omitempty"`
}
