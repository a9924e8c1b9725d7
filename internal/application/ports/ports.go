// Package ports define los puertos de salida que usan los casos de uso.
package ports

import (
	"context"
	"time"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// TxRunner ejecuta fn como una unidad de trabajo: si fn falla, el estado previo se conserva.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Set) error) error
}

// Notifier publica avisos efímeros para el usuario.
type Notifier interface {
	Push(kind entity.NotificationType, message string) entity.Notification
}

// Clock fuente de tiempo inyectable.
type Clock func() time.Time

// Now devuelve la hora del reloj, o time.Now si es nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// DocumentGenerator genera los PDF de la oficina.
type DocumentGenerator interface {
	BudgetPDF(ctx context.Context, profile *entity.WorkshopProfile, budget *entity.Budget) ([]byte, error)
	InvoicePDF(ctx context.Context, profile *entity.WorkshopProfile, invoice *entity.IssuedInvoice, car *entity.Car) ([]byte, error)
	PaymentReceiptPDF(ctx context.Context, profile *entity.WorkshopProfile, payment *entity.PaymentRecord, employee *entity.Employee) ([]byte, error)
}

// InvoiceXMLBuilder arma el documento XML de la nota y su digest canónico.
type InvoiceXMLBuilder interface {
	Build(profile *entity.WorkshopProfile, invoice *entity.IssuedInvoice, car *entity.Car) (xmlDoc []byte, digest string, err error)
}
