package checkout

import (
	"context"
	"errors"

	"github.com/jhoicas/pos-core/internal/application/ledger"
	"github.com/jhoicas/pos-core/internal/application/sequence"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Orchestrator ejecuta los cinco flujos mutantes del punto de venta con la
// misma secuencia: validar → repartir descuento → emitir consecutivo →
// persistir el documento → aplicar deltas de stock con sus movimientos.
//
// El consecutivo se emite exactamente una vez por intento; si un paso
// posterior falla, el número NO se reutiliza (hueco aceptado) y la operación
// completa debe reintentarse con un número nuevo. Un fallo después de
// persistir se reporta como PartialReconciliationError y el documento queda
// marcado, nunca como éxito silencioso.
type Orchestrator struct {
	counter     *sequence.Counter
	ledger      *ledger.Ledger
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

// New construye el orquestador.
func New(
	counter *sequence.Counter,
	ldg *ledger.Ledger,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) *Orchestrator {
	return &Orchestrator{
		counter:     counter,
		ledger:      ldg,
		productRepo: productRepo,
		txRepo:      txRepo,
	}
}

// delta es un delta de stock pendiente, agregado por producto y razón.
type delta struct {
	productID string
	amount    int64
	reason    string
	policy    ledger.NegativePolicy
}

// aggregateDeltas colapsa deltas del mismo producto y razón en uno solo, en
// orden de primera aparición: el ledger se invoca una vez por producto/razón.
func aggregateDeltas(deltas []delta) []delta {
	type key struct{ product, reason string }
	index := make(map[key]int)
	out := make([]delta, 0, len(deltas))
	for _, d := range deltas {
		if d.amount == 0 {
			continue
		}
		k := key{d.productID, d.reason}
		if i, ok := index[k]; ok {
			out[i].amount += d.amount
			continue
		}
		index[k] = len(out)
		out = append(out, d)
	}
	return out
}

// applyDeltas aplica los deltas en secuencia, uno por producto. No hay
// transacción que abarque el ciclo completo: cada delta confirma por su
// cuenta, y un fallo a mitad marca el documento como needs_reconciliation y
// devuelve PartialReconciliationError con lo aplicado y lo pendiente.
func (o *Orchestrator) applyDeltas(ctx context.Context, docType, docID, number string, actorID string, deltas []delta) error {
	var applied []string
	for i, d := range deltas {
		_, err := o.ledger.Apply(ctx, ledger.ApplyInput{
			ProductID: d.productID,
			Delta:     d.amount,
			Reason:    d.reason,
			Reference: number,
			ActorID:   actorID,
			Policy:    d.policy,
		})
		if err != nil {
			failed := make([]string, 0, len(deltas)-i)
			for _, rest := range deltas[i:] {
				failed = append(failed, rest.productID)
			}
			if markErr := o.txRepo.MarkNeedsReconciliation(ctx, docType, docID); markErr != nil {
				err = errors.Join(err, markErr)
			}
			return &domain.PartialReconciliationError{
				DocumentNumber: number,
				Applied:        applied,
				Failed:         failed,
				Cause:          err,
			}
		}
		applied = append(applied, d.productID)
	}
	return nil
}

// snapshotProducts lee el estado más fresco de cada producto referenciado.
// Falla con ErrProductNotFound si alguno no existe.
func (o *Orchestrator) snapshotProducts(ctx context.Context, productIDs []string) (map[string]*entity.Product, error) {
	seen := make(map[string]*entity.Product, len(productIDs))
	for _, id := range productIDs {
		if id == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := seen[id]; ok {
			continue
		}
		product, err := o.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		seen[id] = product
	}
	return seen, nil
}

// GetSale devuelve una factura de venta por número.
func (o *Orchestrator) GetSale(ctx context.Context, number string) (*entity.Sale, error) {
	if number == "" {
		return nil, domain.ErrInvalidInput
	}
	return o.txRepo.GetSaleByNumber(ctx, number)
}

// ListSales devuelve las ventas más recientes.
func (o *Orchestrator) ListSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	return o.txRepo.ListSales(ctx, limit)
}

// GetPurchase devuelve una compra por número.
func (o *Orchestrator) GetPurchase(ctx context.Context, number string) (*entity.Purchase, error) {
	if number == "" {
		return nil, domain.ErrInvalidInput
	}
	return o.txRepo.GetPurchaseByNumber(ctx, number)
}

func validPayment(payment string) bool {
	switch payment {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
		return true
	}
	return false
}
