package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

func TestTxRunner_ErrorRestauraEstado(t *testing.T) {
	store := NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Stock.Save(&entity.StockItem{ID: "s1", Name: "Primer PU", CurrentQuantity: decimal.NewFromInt(10)}))

	boom := errors.New("boom")
	err := NewTxRunner(store).Run(context.Background(), func(tx repository.Set) error {
		item, err := tx.Stock.GetByID("s1")
		require.NoError(t, err)
		item.CurrentQuantity = decimal.Zero
		require.NoError(t, tx.Stock.Save(item))
		require.NoError(t, tx.Movements.Append(&entity.StockMovement{ID: "m1", StockItemID: "s1"}))
		require.NoError(t, tx.Cars.Save(&entity.Car{ID: "c1", Plate: "ABC1D23"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	item, err := repos.Stock.GetByID("s1")
	require.NoError(t, err)
	assert.True(t, item.CurrentQuantity.Equal(decimal.NewFromInt(10)))
	movs, _ := repos.Movements.List(repository.MovementFilter{})
	assert.Empty(t, movs)
	_, err = repos.Cars.GetByID("c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_PanicRestauraEstado(t *testing.T) {
	store := NewStore()
	run := NewTxRunner(store)

	assert.Panics(t, func() {
		_ = run.Run(context.Background(), func(tx repository.Set) error {
			_ = tx.Cars.Save(&entity.Car{ID: "c1"})
			panic("falla")
		})
	})
	// el lock se liberó y el carro no quedó
	_, err := store.Repos().Cars.GetByID("c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_Commit(t *testing.T) {
	store := NewStore()
	err := NewTxRunner(store).Run(context.Background(), func(tx repository.Set) error {
		return tx.Cars.Save(&entity.Car{ID: "c1"})
	})
	require.NoError(t, err)
	_, err = store.Repos().Cars.GetByID("c1")
	assert.NoError(t, err)
}

func TestRepos_DevuelvenCopias(t *testing.T) {
	repos := NewStore().Repos()
	require.NoError(t, repos.Stock.Save(&entity.StockItem{ID: "s1", Name: "Lixa"}))

	a, _ := repos.Stock.GetByID("s1")
	a.Name = "mutado"
	b, _ := repos.Stock.GetByID("s1")
	assert.Equal(t, "Lixa", b.Name)
}

func TestEmployeeRepo_CodigoDuplicado(t *testing.T) {
	repos := NewStore().Repos()
	require.NoError(t, repos.Employees.Save(&entity.Employee{ID: "e1", EmployeeID: "FUNC01"}))
	err := repos.Employees.Save(&entity.Employee{ID: "e2", EmployeeID: "func01"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
