// Package memory implementa los repositorios sobre un estado en memoria del proceso.
// Nada se persiste: reiniciar el proceso descarta todos los datos.
package memory

import (
	"sync"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// Store estado único de la aplicación. Las mutaciones dentro de TxRunner.Run
// toman el lock de escritura durante toda la operación.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios que toman el lock en cada llamada (uso fuera de transacción).
func (s *Store) Repos() repository.Set {
	return s.repos(guard{mu: &s.mu})
}

func (s *Store) repos(g guard) repository.Set {
	b := base{st: s.st, g: g}
	return repository.Set{
		Cars:      &CarRepo{b},
		Budgets:   &BudgetRepo{b},
		Stock:     &StockRepo{b},
		Movements: &MovementRepo{b},
		Employees: &EmployeeRepo{b},
		Payments:  &PaymentRepo{b},
		Expenses:  &ExpenseRepo{b},
		Audit:     &AuditRepo{b},
		Invoices:  &InvoiceRepo{b},
		Problems:  &ProblemRepo{b},
		Users:     &UserRepo{b},
		Profile:   &ProfileRepo{b},
	}
}

// guard con mu nil no bloquea: el caller ya tiene el lock (dentro de Run).
type guard struct {
	mu *sync.RWMutex
}

func (g guard) read(fn func()) {
	if g.mu != nil {
		g.mu.RLock()
		defer g.mu.RUnlock()
	}
	fn()
}

func (g guard) write(fn func()) {
	if g.mu != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
	}
	fn()
}

type base struct {
	st *state
	g  guard
}

// table filas por id conservando el orden de inserción.
// Los valores guardados nunca se mutan en el lugar: Save reemplaza por una copia.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) del(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t table[T]) snapshot() table[T] {
	rows := make(map[string]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return table[T]{rows: rows, order: append([]string(nil), t.order...)}
}

type state struct {
	cars       table[*entity.Car]
	budgets    table[*entity.Budget]
	stock      table[*entity.StockItem]
	employees  table[*entity.Employee]
	expenses   table[*entity.FixedExpense]
	problems   table[*entity.GeneralProblem]
	invoices   table[*entity.IssuedInvoice]
	users      table[*entity.User]
	movements  []*entity.StockMovement
	payments   []*entity.PaymentRecord
	audit      []*entity.AuditLogEntry
	profile    *entity.WorkshopProfile
	invoiceSeq int
}

func newState() *state {
	return &state{
		cars:      newTable[*entity.Car](),
		budgets:   newTable[*entity.Budget](),
		stock:     newTable[*entity.StockItem](),
		employees: newTable[*entity.Employee](),
		expenses:  newTable[*entity.FixedExpense](),
		problems:  newTable[*entity.GeneralProblem](),
		invoices:  newTable[*entity.IssuedInvoice](),
		users:     newTable[*entity.User](),
		profile:   &entity.WorkshopProfile{},
	}
}

// snapshot copia superficial suficiente para restaurar: las filas son inmutables.
func (s *state) snapshot() state {
	return state{
		cars:       s.cars.snapshot(),
		budgets:    s.budgets.snapshot(),
		stock:      s.stock.snapshot(),
		employees:  s.employees.snapshot(),
		expenses:   s.expenses.snapshot(),
		problems:   s.problems.snapshot(),
		invoices:   s.invoices.snapshot(),
		users:      s.users.snapshot(),
		movements:  append([]*entity.StockMovement(nil), s.movements...),
		payments:   append([]*entity.PaymentRecord(nil), s.payments...),
		audit:      append([]*entity.AuditLogEntry(nil), s.audit...),
		profile:    s.profile,
		invoiceSeq: s.invoiceSeq,
	}
}

func copyOf[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
