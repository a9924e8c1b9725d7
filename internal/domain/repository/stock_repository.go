package repository

import "github.com/jhoicas/oficina-manager/internal/domain/entity"

// StockRepository puerto del almacén de materiales.
// GetByID devuelve domain.ErrNotFound si el item no existe.
type StockRepository interface {
	GetByID(id string) (*entity.StockItem, error)
	List() ([]*entity.StockItem, error)
	Save(item *entity.StockItem) error
	Delete(id string) error
}
