package carflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// View pestaña del tablero de carros.
type View string

const (
	ViewInProgress View = "in-progress"
	ViewCompleted  View = "completed"
	ViewHistory    View = "history"
)

// Period filtro de fecha de salida aplicado a la vista de histórico.
type Period string

const (
	PeriodAll    Period = "all"
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// ListFilter parámetros de ListCars. From/To solo aplican a PeriodCustom.
type ListFilter struct {
	View   View
	Period Period
	From   *time.Time
	To     *time.Time
}

// HistoryRange intervalo cerrado [start, end] del período relativo a now.
// La semana empieza el domingo. Para custom, un extremo ausente queda abierto.
func HistoryRange(p Period, now time.Time, from, to *time.Time) (start, end time.Time, err error) {
	loc := now.Location()
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	switch p {
	case PeriodToday:
		start = midnight(now)
		return start, start.Add(24*time.Hour - time.Nanosecond), nil
	case PeriodWeek:
		return midnight(now.AddDate(0, 0, -int(now.Weekday()))), now, nil
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), now, nil
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), now, nil
	case PeriodCustom:
		start = time.Unix(0, 0).In(loc)
		end = now
		if from != nil {
			start = midnight(*from)
		}
		if to != nil {
			end = midnight(*to).Add(24*time.Hour - time.Second)
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: período %q", domain.ErrInvalidInput, p)
	}
}

// ListCars devuelve los carros de la vista en orden de alta.
// Histórico muestra los concluidos, filtrados por fecha de salida si hay período.
func (uc *UseCase) ListCars(_ context.Context, f ListFilter) ([]*entity.Car, error) {
	cars, err := uc.repos.Cars.List()
	if err != nil {
		return nil, err
	}
	var want entity.CarStatus
	switch f.View {
	case ViewInProgress, "":
		want = entity.CarStatusInProgress
	case ViewCompleted, ViewHistory:
		want = entity.CarStatusCompleted
	default:
		return nil, fmt.Errorf("%w: visão %q", domain.ErrInvalidInput, f.View)
	}

	filterDates := f.View == ViewHistory && f.Period != "" && f.Period != PeriodAll
	var start, end time.Time
	if filterDates {
		start, end, err = HistoryRange(f.Period, uc.clock.Now(), f.From, f.To)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*entity.Car, 0, len(cars))
	for _, c := range cars {
		if c.Status != want && !(f.View == ViewHistory && c.Status == entity.CarStatusHistory) {
			continue
		}
		if filterDates && (c.ExitDate.Before(start) || c.ExitDate.After(end)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func errorsIsTransition(err error) bool {
	return errors.Is(err, domain.ErrInvalidTransition)
}
