package repository

import "github.com/jhoicas/oficina-manager/internal/domain/entity"

// InvoiceRepository puerto de notas fiscales emitidas.
type InvoiceRepository interface {
	Create(invoice *entity.IssuedInvoice) error
	GetByID(id string) (*entity.IssuedInvoice, error)
	List() ([]*entity.IssuedInvoice, error)
	// NextNumber numeración secuencial de la oficina (1, 2, 3...).
	NextNumber() (int, error)
}
