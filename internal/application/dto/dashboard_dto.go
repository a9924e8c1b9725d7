package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen financiero y operativo del mes en curso.
type DashboardSummaryDTO struct {
	MonthlyRevenue        decimal.Decimal `json:"monthly_revenue"`         // valor de serviço dos carros concluídos no mês
	MaterialsConsumedCost decimal.Decimal `json:"materials_consumed_cost"` // saídas do mês × preço atual
	RecurringFixedCost    decimal.Decimal `json:"recurring_fixed_cost"`    // gastos fixos sem funcionário e não pontuais
	OneTimePurchases      decimal.Decimal `json:"one_time_purchases"`
	SalariesPaid          decimal.Decimal `json:"salaries_paid"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	Profit                decimal.Decimal `json:"profit"`
	CompletedCars         int             `json:"completed_cars"`
	CarsInProgress        int             `json:"cars_in_progress"`
	LowStockCount         int             `json:"low_stock_count"`
	UnreadUpdates         int             `json:"unread_updates"`
	OpenProblems          int             `json:"open_problems"`
	DateLabel             string          `json:"date_label"` // ej: "Março 2026"
}
