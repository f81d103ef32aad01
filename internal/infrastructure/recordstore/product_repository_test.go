package recordstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/infrastructure/recordstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del adaptador de productos. El punto delicado es la convivencia entre
// la edición de catálogo y los swaps de stock: una edición con una lectura
// vieja no debe revertir un delta que el ledger ya confirmó.
// ──────────────────────────────────────────────────────────────────────────────

func seedStoredProduct(t *testing.T, repo *recordstore.ProductRepo, stock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:           "p1",
		SKU:          "SKU-1",
		Name:         "Aceite 900ml",
		Stock:        stock,
		PurchaseCost: decimal.NewFromInt(60),
		CurrentPrice: decimal.NewFromInt(100),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// Una edición de catálogo hecha con una lectura anterior a un swap de stock no
// revierte el swap: el movimiento dice que salieron unidades y el stock lo
// refleja, aunque el editor tuviera en mano el valor viejo.
func TestUpdateCatalog_NoPisaUnSwapDeStockConcurrente(t *testing.T) {
	repo := recordstore.NewProductRepository(recordstore.NewMemoryStore())
	ctx := context.Background()
	seedStoredProduct(t, repo, 10)

	// Lectura del editor de catálogo, anterior al delta.
	snapshot, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.EqualValues(t, 10, snapshot.Stock)

	// El ledger confirma una salida de 3 unidades.
	committed, err := repo.CompareAndSwapStock(ctx, "p1", 10, 7)
	require.NoError(t, err)
	require.True(t, committed)

	// El editor escribe su lectura vieja con un cambio de catálogo.
	snapshot.Name = "Aceite 900ml premium"
	snapshot.CurrentPrice = decimal.NewFromInt(110)
	require.NoError(t, repo.UpdateCatalog(ctx, snapshot))

	final, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 7, final.Stock, "el stock conserva el delta del ledger")
	assert.Equal(t, "Aceite 900ml premium", final.Name)
	assert.True(t, final.CurrentPrice.Equal(decimal.NewFromInt(110)))
}

func TestUpdateCatalog_ProductoInexistente(t *testing.T) {
	repo := recordstore.NewProductRepository(recordstore.NewMemoryStore())
	err := repo.UpdateCatalog(context.Background(), &entity.Product{ID: "nada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompareAndSwapStock_ProductoInexistente(t *testing.T) {
	repo := recordstore.NewProductRepository(recordstore.NewMemoryStore())
	_, err := repo.CompareAndSwapStock(context.Background(), "nada", 5, 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
