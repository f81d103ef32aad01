package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-core/internal/application/ledger"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/infrastructure/recordstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del libro de stock. El contrato: cada delta aplicado deja exactamente
// un movimiento que lo explica, las políticas de negativo se respetan, y bajo
// escritores concurrentes ninguna actualización se pierde.
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	ledger       *ledger.Ledger
	productRepo  *recordstore.ProductRepo
	movementRepo *recordstore.MovementRepo
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := recordstore.NewMemoryStore()
	productRepo := recordstore.NewProductRepository(store)
	movementRepo := recordstore.NewMovementRepository(store)
	return &ledgerFixture{
		ledger:       ledger.New(productRepo, movementRepo),
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

func (f *ledgerFixture) seedProduct(t *testing.T, stock int64) *entity.Product {
	t.Helper()
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          "SKU-" + uuid.New().String()[:8],
		Name:         "Producto de prueba",
		Stock:        stock,
		PurchaseCost: decimal.NewFromInt(60),
		CurrentPrice: decimal.NewFromInt(100),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	return product
}

func (f *ledgerFixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	product, err := f.productRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}

func TestApply_EntradaAumentaStockYDejaMovimiento(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 10)

	applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     6,
		Reason:    entity.ReasonPurchase,
		Reference: "1000-S",
		ActorID:   "user-1",
		Policy:    ledger.AllowAny,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), applied)
	assert.Equal(t, int64(16), f.stockOf(t, product.ID))

	movements, err := f.movementRepo.ListByProduct(context.Background(), product.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.DirectionIn, movements[0].Direction)
	assert.Equal(t, int64(6), movements[0].Quantity)
	assert.Equal(t, entity.ReasonPurchase, movements[0].Reason)
	assert.Equal(t, "1000-S", movements[0].Reference)
	assert.Equal(t, "user-1", movements[0].CreatedBy)
}

func TestApply_SalidaRegistraMovimientoOut(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 10)

	applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     -3,
		Reason:    entity.ReasonSale,
		Reference: "1000",
		ActorID:   "user-1",
		Policy:    ledger.RejectNegative,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), applied)
	assert.Equal(t, int64(7), f.stockOf(t, product.ID))

	movements, err := f.movementRepo.ListByReference(context.Background(), "1000")
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.DirectionOut, movements[0].Direction)
	assert.Equal(t, int64(3), movements[0].Quantity, "la cantidad del movimiento es el valor absoluto del delta")
}

func TestApply_RejectNegative_FallaSinTocarNada(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 5)

	_, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     -8,
		Reason:    entity.ReasonSale,
		Reference: "1000",
		Policy:    ledger.RejectNegative,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortages, 1)
	assert.Equal(t, int64(8), insufficient.Shortages[0].Requested)
	assert.Equal(t, int64(5), insufficient.Shortages[0].Available)

	assert.Equal(t, int64(5), f.stockOf(t, product.ID), "el stock no cambia ante rechazo")
	movements, err := f.movementRepo.ListByProduct(context.Background(), product.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movements, "un rechazo no deja movimiento")
}

func TestApply_ClampAtZero_RecortaALoDisponible(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 4)

	applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     -10,
		Reason:    entity.ReasonSupplierReturn,
		Reference: "1000-SR",
		Policy:    ledger.ClampAtZero,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), applied, "la salida se recorta a lo disponible")
	assert.Equal(t, int64(0), f.stockOf(t, product.ID))

	movements, err := f.movementRepo.ListByProduct(context.Background(), product.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, int64(4), movements[0].Quantity, "el movimiento registra la cantidad efectiva, no la pedida")
}

func TestApply_ClampAtZero_StockEnCeroNoDejaMovimiento(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 0)

	applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     -5,
		Reason:    entity.ReasonSupplierReturn,
		Reference: "1000-SR",
		Policy:    ledger.ClampAtZero,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), applied)

	movements, err := f.movementRepo.ListByProduct(context.Background(), product.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movements, "un recorte a cero unidades no mueve nada")
}

func TestApply_AllowAny_PermiteNegativo(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 2)

	applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     -5,
		Reason:    entity.ReasonAdjust,
		Reference: "ajuste-manual",
		Policy:    ledger.AllowAny,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-5), applied)
	assert.Equal(t, int64(-3), f.stockOf(t, product.ID))
}

func TestApply_DeltaCeroEsNoOp(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 10)

	applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: product.ID,
		Delta:     0,
		Reason:    entity.ReasonAdjust,
		Policy:    ledger.AllowAny,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), applied)
	assert.Equal(t, int64(10), f.stockOf(t, product.ID))
}

func TestApply_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
		ProductID: "no-existe",
		Delta:     1,
		Reason:    entity.ReasonAdjust,
		Policy:    ledger.AllowAny,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// TestApply_ConcurrenciaSinPerderActualizaciones lanza salidas concurrentes de
// una unidad y verifica que el stock final refleja exactamente las que se
// confirmaron: la escritura condicional no pierde actualizaciones.
func TestApply_ConcurrenciaSinPerderActualizaciones(t *testing.T) {
	f := newLedgerFixture(t)
	product := f.seedProduct(t, 30)

	const workers = 20
	var committed int64
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied, err := f.ledger.Apply(context.Background(), ledger.ApplyInput{
				ProductID: product.ID,
				Delta:     -1,
				Reason:    entity.ReasonSale,
				Reference: "concurrente",
				Policy:    ledger.RejectNegative,
			})
			if err != nil {
				// ErrConflict por agotamiento de reintentos es aceptable bajo
				// contención; lo que no puede pasar es perder una escritura.
				return
			}
			mu.Lock()
			committed += -applied
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 30-committed, f.stockOf(t, product.ID))

	movements, err := f.movementRepo.ListByReference(context.Background(), "concurrente")
	require.NoError(t, err)
	assert.Len(t, movements, int(committed), "un movimiento por cada delta confirmado")
}
