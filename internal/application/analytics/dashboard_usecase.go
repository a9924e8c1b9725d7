// Package analytics contiene el resumen financiero y operativo del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// DashboardUseCase genera el resumen del mes en curso.
//
// Fuente de datos: repositorios en modo lectura; no abre transacciones.
type DashboardUseCase struct {
	repos repository.Set
	clock ports.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Set, clock ports.Clock) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, clock: clock}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres lecturas en paralelo:
//  1. carros        → ingresos, concluidos, en curso, novedades
//  2. stock         → materiales consumidos, stock bajo
//  3. gastos/pagos  → fijos, compras puntuales, salarios, problemas
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.clock.Now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	inMonth := func(t time.Time) bool { return !t.Before(monthStart) && t.Before(monthEnd) }

	type carsResult struct {
		revenue                    decimal.Decimal
		completed, inProgress, new int
		err                        error
	}
	type stockResult struct {
		consumed decimal.Decimal
		low      int
		err      error
	}
	type costsResult struct {
		recurring, oneTime, salaries decimal.Decimal
		openProblems                 int
		err                          error
	}

	carsCh := make(chan carsResult, 1)
	stockCh := make(chan stockResult, 1)
	costsCh := make(chan costsResult, 1)

	go func() {
		res := carsResult{revenue: decimal.Zero}
		cars, err := uc.repos.Cars.List()
		if err != nil {
			carsCh <- carsResult{err: err}
			return
		}
		for _, c := range cars {
			switch c.Status {
			case entity.CarStatusCompleted, entity.CarStatusHistory:
				if inMonth(c.ExitDate) {
					res.revenue = res.revenue.Add(c.ServiceValue)
					res.completed++
				}
			case entity.CarStatusInProgress:
				res.inProgress++
			}
			if c.HasUnreadUpdate {
				res.new++
			}
		}
		carsCh <- res
	}()
	go func() {
		items, err := uc.repos.Stock.List()
		if err != nil {
			stockCh <- stockResult{err: err}
			return
		}
		last := monthEnd.Add(-time.Nanosecond)
		movs, err := uc.repos.Movements.List(repository.MovementFilter{Direction: entity.DirectionOut, From: &monthStart, To: &last})
		if err != nil {
			stockCh <- stockResult{err: err}
			return
		}
		low := 0
		for _, it := range items {
			if it.IsLow() {
				low++
			}
		}
		stockCh <- stockResult{consumed: inventory.ConsumedCost(movs, items), low: low}
	}()
	go func() {
		res := costsResult{recurring: decimal.Zero, oneTime: decimal.Zero, salaries: decimal.Zero}
		expenses, err := uc.repos.Expenses.List()
		if err != nil {
			costsCh <- costsResult{err: err}
			return
		}
		for _, e := range expenses {
			switch {
			case e.EmployeeID != "":
			case e.IsOneTimePurchase:
				if e.PurchaseDate != nil && inMonth(*e.PurchaseDate) {
					res.oneTime = res.oneTime.Add(e.MonthlyCost)
				}
			default:
				res.recurring = res.recurring.Add(e.MonthlyCost)
			}
		}
		payments, err := uc.repos.Payments.List("", monthStart, monthEnd)
		if err != nil {
			costsCh <- costsResult{err: err}
			return
		}
		for _, p := range payments {
			res.salaries = res.salaries.Add(p.Amount)
		}
		problems, err := uc.repos.Problems.List()
		if err != nil {
			costsCh <- costsResult{err: err}
			return
		}
		for _, p := range problems {
			if !p.Resolved {
				res.openProblems++
			}
		}
		costsCh <- res
	}()

	cars := <-carsCh
	stock := <-stockCh
	costs := <-costsCh

	if cars.err != nil {
		return nil, fmt.Errorf("dashboard: carros: %w", cars.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: estoque: %w", stock.err)
	}
	if costs.err != nil {
		return nil, fmt.Errorf("dashboard: despesas: %w", costs.err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// ── Totales ────────────────────────────────────────────────────────────────
	total := stock.consumed.Add(costs.recurring).Add(costs.oneTime).Add(costs.salaries)

	return &dto.DashboardSummaryDTO{
		MonthlyRevenue:        cars.revenue.Round(2),
		MaterialsConsumedCost: stock.consumed.Round(2),
		RecurringFixedCost:    costs.recurring.Round(2),
		OneTimePurchases:      costs.oneTime.Round(2),
		SalariesPaid:          costs.salaries.Round(2),
		TotalExpenses:         total.Round(2),
		Profit:                cars.revenue.Sub(total).Round(2),
		CompletedCars:         cars.completed,
		CarsInProgress:        cars.inProgress,
		LowStockCount:         stock.low,
		UnreadUpdates:         cars.new,
		OpenProblems:          costs.openProblems,
		DateLabel:             monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Março 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
