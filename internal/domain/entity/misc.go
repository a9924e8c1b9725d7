package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationType severidad de la notificación al usuario.
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyInfo    NotificationType = "info"
	NotifyError   NotificationType = "error"
)

// NotificationAudience portales que ven el aviso.
type NotificationAudience string

const (
	// AudienceDashboard solo el dashboard administrativo.
	AudienceDashboard NotificationAudience = "dashboard"
	// AudienceAll dashboard y portal de loja.
	AudienceAll NotificationAudience = "all"
)

// Notification aviso efímero; desaparece al llegar ExpiresAt.
type Notification struct {
	ID        string               `json:"id"`
	Message   string               `json:"message"`
	Type      NotificationType     `json:"type"`
	Audience  NotificationAudience `json:"audience"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// VisibleTo indica si el aviso se muestra a la audiencia pedida.
// El dashboard ve todo; la loja solo lo compartido.
func (n Notification) VisibleTo(a NotificationAudience) bool {
	return a == AudienceDashboard || n.Audience == AudienceAll
}

// GeneralProblem problema reportado desde el portal de loja, sin carro asociado.
type GeneralProblem struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	ReporterID   string    `json:"reporter_id"`
	ReporterName string    `json:"reporter_name"`
	Description  string    `json:"description"`
	Resolved     bool      `json:"resolved"`
}

// FixedExpense gasto fijo mensual o compra puntual.
// Las entradas con EmployeeID se derivan del salario del empleado.
type FixedExpense struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	MonthlyCost       decimal.Decimal `json:"monthly_cost"`
	EmployeeID        string          `json:"employee_id,omitempty"`
	IsOneTimePurchase bool            `json:"is_one_time_purchase"`
	PurchaseDate      *time.Time      `json:"purchase_date,omitempty"`
	InvoiceImage      string          `json:"invoice_image,omitempty"`
}

// SalaryExpenseID identificador del gasto derivado del salario.
func SalaryExpenseID(employeeID string) string { return "salary-" + employeeID }

// SalaryExpenseName nombre del gasto derivado del salario.
func SalaryExpenseName(employeeName string) string { return "Salário - " + employeeName }

// WorkshopProfile datos de la oficina usados en documentos.
type WorkshopProfile struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}
