package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

var (
	_ repository.CarRepository           = (*CarRepo)(nil)
	_ repository.BudgetRepository        = (*BudgetRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.EmployeeRepository      = (*EmployeeRepo)(nil)
	_ repository.PaymentRepository       = (*PaymentRepo)(nil)
	_ repository.ExpenseRepository       = (*ExpenseRepo)(nil)
	_ repository.AuditRepository         = (*AuditRepo)(nil)
	_ repository.InvoiceRepository       = (*InvoiceRepo)(nil)
	_ repository.ProblemRepository       = (*ProblemRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.ProfileRepository       = (*ProfileRepo)(nil)
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
}

// ── Carros ────────────────────────────────────────────────────────────────────

// CarRepo carros en memoria.
type CarRepo struct{ base }

func (r *CarRepo) GetByID(id string) (car *entity.Car, err error) {
	r.g.read(func() {
		c, ok := r.st.cars.get(id)
		if !ok {
			err = notFound("carro", id)
			return
		}
		car = c.Clone()
	})
	return car, err
}

func (r *CarRepo) List() (out []*entity.Car, err error) {
	r.g.read(func() {
		for _, c := range r.st.cars.list() {
			out = append(out, c.Clone())
		}
	})
	return out, nil
}

func (r *CarRepo) Save(car *entity.Car) error {
	if car == nil || car.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.cars.put(car.ID, car.Clone()) })
	return nil
}

// ── Presupuestos ──────────────────────────────────────────────────────────────

// BudgetRepo presupuestos en memoria.
type BudgetRepo struct{ base }

func (r *BudgetRepo) GetByID(id string) (b *entity.Budget, err error) {
	r.g.read(func() {
		v, ok := r.st.budgets.get(id)
		if !ok {
			err = notFound("orçamento", id)
			return
		}
		b = v.Clone()
	})
	return b, err
}

func (r *BudgetRepo) List() (out []*entity.Budget, err error) {
	r.g.read(func() {
		for _, b := range r.st.budgets.list() {
			out = append(out, b.Clone())
		}
	})
	return out, nil
}

func (r *BudgetRepo) Save(b *entity.Budget) error {
	if b == nil || b.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.budgets.put(b.ID, b.Clone()) })
	return nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockRepo items de stock en memoria.
type StockRepo struct{ base }

func (r *StockRepo) GetByID(id string) (item *entity.StockItem, err error) {
	r.g.read(func() {
		v, ok := r.st.stock.get(id)
		if !ok {
			err = notFound("item de estoque", id)
			return
		}
		item = v.Clone()
	})
	return item, err
}

func (r *StockRepo) List() (out []*entity.StockItem, err error) {
	r.g.read(func() {
		for _, it := range r.st.stock.list() {
			out = append(out, it.Clone())
		}
	})
	return out, nil
}

func (r *StockRepo) Save(item *entity.StockItem) error {
	if item == nil || item.ID == "" {
		return domain.ErrInvalidInput
	}
	if item.CurrentQuantity.IsNegative() {
		return fmt.Errorf("%w: saldo negativo em %s", domain.ErrInvalidInput, item.Name)
	}
	r.g.write(func() { r.st.stock.put(item.ID, item.Clone()) })
	return nil
}

func (r *StockRepo) Delete(id string) (err error) {
	r.g.write(func() {
		if !r.st.stock.del(id) {
			err = notFound("item de estoque", id)
		}
	})
	return err
}

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct{ base }

func (r *MovementRepo) Append(m *entity.StockMovement) error {
	if m == nil || m.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.movements = append(r.st.movements, copyOf(m)) })
	return nil
}

func (r *MovementRepo) List(f repository.MovementFilter) (out []*entity.StockMovement, err error) {
	r.g.read(func() {
		for i := len(r.st.movements) - 1; i >= 0; i-- {
			m := r.st.movements[i]
			if f.StockItemID != "" && m.StockItemID != f.StockItemID {
				continue
			}
			if f.Direction != "" && m.Direction != f.Direction {
				continue
			}
			if f.CarID != "" && m.RelatedCarID != f.CarID {
				continue
			}
			if !inRange(m.Timestamp, f.From, f.To) {
				continue
			}
			out = append(out, copyOf(m))
		}
	})
	return paginate(out, f.Limit, f.Offset), nil
}

// ── Personal ──────────────────────────────────────────────────────────────────

// EmployeeRepo empleados en memoria.
type EmployeeRepo struct{ base }

func (r *EmployeeRepo) GetByID(id string) (e *entity.Employee, err error) {
	r.g.read(func() {
		v, ok := r.st.employees.get(id)
		if !ok {
			err = notFound("funcionário", id)
			return
		}
		e = v.Clone()
	})
	return e, err
}

func (r *EmployeeRepo) GetByEmployeeID(code string) (e *entity.Employee, err error) {
	r.g.read(func() {
		for _, v := range r.st.employees.list() {
			if v.EmployeeID == code {
				e = v.Clone()
				return
			}
		}
		err = notFound("funcionário", code)
	})
	return e, err
}

func (r *EmployeeRepo) List() (out []*entity.Employee, err error) {
	r.g.read(func() {
		for _, e := range r.st.employees.list() {
			out = append(out, e.Clone())
		}
	})
	return out, nil
}

func (r *EmployeeRepo) Save(e *entity.Employee) (err error) {
	if e == nil || e.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() {
		for _, v := range r.st.employees.list() {
			if e.EmployeeID != "" && v.ID != e.ID && strings.EqualFold(v.EmployeeID, e.EmployeeID) {
				err = fmt.Errorf("%w: código de acesso %s", domain.ErrDuplicate, e.EmployeeID)
				return
			}
		}
		r.st.employees.put(e.ID, e.Clone())
	})
	return err
}

func (r *EmployeeRepo) Delete(id string) (err error) {
	r.g.write(func() {
		if !r.st.employees.del(id) {
			err = notFound("funcionário", id)
		}
	})
	return err
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct{ base }

func (r *PaymentRepo) Append(p *entity.PaymentRecord) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.payments = append(r.st.payments, copyOf(p)) })
	return nil
}

func (r *PaymentRepo) GetByID(id string) (p *entity.PaymentRecord, err error) {
	r.g.read(func() {
		for _, v := range r.st.payments {
			if v.ID == id {
				p = copyOf(v)
				return
			}
		}
		err = notFound("pagamento", id)
	})
	return p, err
}

func (r *PaymentRepo) List(employeeID string, from, to time.Time) (out []*entity.PaymentRecord, err error) {
	r.g.read(func() {
		for _, p := range r.st.payments {
			if employeeID != "" && p.EmployeeID != employeeID {
				continue
			}
			if !from.IsZero() && p.Date.Before(from) {
				continue
			}
			if !to.IsZero() && !p.Date.Before(to) {
				continue
			}
			out = append(out, copyOf(p))
		}
	})
	return out, nil
}

// ExpenseRepo gastos fijos en memoria.
type ExpenseRepo struct{ base }

func (r *ExpenseRepo) GetByID(id string) (e *entity.FixedExpense, err error) {
	r.g.read(func() {
		v, ok := r.st.expenses.get(id)
		if !ok {
			err = notFound("despesa", id)
			return
		}
		e = copyOf(v)
	})
	return e, err
}

func (r *ExpenseRepo) List() (out []*entity.FixedExpense, err error) {
	r.g.read(func() {
		for _, e := range r.st.expenses.list() {
			out = append(out, copyOf(e))
		}
	})
	return out, nil
}

func (r *ExpenseRepo) Save(e *entity.FixedExpense) error {
	if e == nil || e.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.expenses.put(e.ID, copyOf(e)) })
	return nil
}

func (r *ExpenseRepo) Delete(id string) (err error) {
	r.g.write(func() {
		if !r.st.expenses.del(id) {
			err = notFound("despesa", id)
		}
	})
	return err
}

// ── Registros ─────────────────────────────────────────────────────────────────

// AuditRepo auditoría en memoria.
type AuditRepo struct{ base }

func (r *AuditRepo) Append(e *entity.AuditLogEntry) error {
	if e == nil || e.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.audit = append(r.st.audit, copyOf(e)) })
	return nil
}

func (r *AuditRepo) List(f repository.AuditFilter) (out []*entity.AuditLogEntry, err error) {
	r.g.read(func() {
		for i := len(r.st.audit) - 1; i >= 0; i-- {
			e := r.st.audit[i]
			if f.ActorID != "" && e.ActorID != f.ActorID {
				continue
			}
			if f.Action != "" && e.Action != f.Action {
				continue
			}
			if !inRange(e.Timestamp, f.From, f.To) {
				continue
			}
			out = append(out, copyOf(e))
		}
	})
	return out, nil
}

// InvoiceRepo notas fiscales en memoria.
type InvoiceRepo struct{ base }

func (r *InvoiceRepo) Create(inv *entity.IssuedInvoice) (err error) {
	if inv == nil || inv.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() {
		if _, ok := r.st.invoices.get(inv.ID); ok {
			err = fmt.Errorf("%w: nota %s", domain.ErrDuplicate, inv.ID)
			return
		}
		cp := copyOf(inv)
		cp.XML = append([]byte(nil), inv.XML...)
		r.st.invoices.put(inv.ID, cp)
	})
	return err
}

func (r *InvoiceRepo) GetByID(id string) (inv *entity.IssuedInvoice, err error) {
	r.g.read(func() {
		v, ok := r.st.invoices.get(id)
		if !ok {
			err = notFound("nota fiscal", id)
			return
		}
		inv = copyOf(v)
		inv.XML = append([]byte(nil), v.XML...)
	})
	return inv, err
}

func (r *InvoiceRepo) List() (out []*entity.IssuedInvoice, err error) {
	r.g.read(func() {
		for _, v := range r.st.invoices.list() {
			out = append(out, copyOf(v))
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateIssued.After(out[j].DateIssued) })
	return out, nil
}

func (r *InvoiceRepo) NextNumber() (n int, err error) {
	r.g.write(func() {
		r.st.invoiceSeq++
		n = r.st.invoiceSeq
	})
	return n, nil
}

// ProblemRepo problemas generales en memoria.
type ProblemRepo struct{ base }

func (r *ProblemRepo) GetByID(id string) (p *entity.GeneralProblem, err error) {
	r.g.read(func() {
		v, ok := r.st.problems.get(id)
		if !ok {
			err = notFound("problema", id)
			return
		}
		p = copyOf(v)
	})
	return p, err
}

func (r *ProblemRepo) List() (out []*entity.GeneralProblem, err error) {
	r.g.read(func() {
		for _, p := range r.st.problems.list() {
			out = append(out, copyOf(p))
		}
	})
	return out, nil
}

func (r *ProblemRepo) Save(p *entity.GeneralProblem) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.problems.put(p.ID, copyOf(p)) })
	return nil
}

// UserRepo administradores en memoria (clave: email en minúsculas).
type UserRepo struct{ base }

func (r *UserRepo) GetByEmail(email string) (u *entity.User, err error) {
	r.g.read(func() {
		v, ok := r.st.users.get(strings.ToLower(strings.TrimSpace(email)))
		if !ok {
			err = notFound("usuário", email)
			return
		}
		u = copyOf(v)
	})
	return u, err
}

func (r *UserRepo) Save(u *entity.User) error {
	if u == nil || u.Email == "" {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.users.put(strings.ToLower(strings.TrimSpace(u.Email)), copyOf(u)) })
	return nil
}

// ProfileRepo perfil de la oficina.
type ProfileRepo struct{ base }

func (r *ProfileRepo) Get() (p *entity.WorkshopProfile, err error) {
	r.g.read(func() { p = copyOf(r.st.profile) })
	if p == nil {
		p = &entity.WorkshopProfile{}
	}
	return p, nil
}

func (r *ProfileRepo) Save(p *entity.WorkshopProfile) error {
	if p == nil {
		return domain.ErrInvalidInput
	}
	r.g.write(func() { r.st.profile = copyOf(p) })
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return []T{}
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
