package memory

import (
	"context"

	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como una unidad de trabajo sobre el Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma el lock de escritura, ejecuta fn con repos atados a la unidad de trabajo
// y restaura el estado previo si fn devuelve error o entra en pánico.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Set) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.st.snapshot()
	committed := false
	defer func() {
		if !committed {
			*s.st = snap
		}
	}()

	if err := fn(s.repos(guard{})); err != nil {
		return err
	}
	committed = true
	return nil
}
