package inventory

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/infrastructure/recordstore"
)

// LowStockWatcher observa la colección de productos por suscripción y deja
// constancia en el log de cada producto que queda en o bajo su umbral mínimo
// tras una escritura. Es el punto de enganche de reposición: el stock solo
// cambia vía ledger, así que cada venta que agota un producto pasa por aquí.
type LowStockWatcher struct {
	store recordstore.Store
	log   zerolog.Logger
}

// NewLowStockWatcher construye el watcher.
func NewLowStockWatcher(store recordstore.Store, log zerolog.Logger) *LowStockWatcher {
	return &LowStockWatcher{store: store, log: log}
}

// Start registra la suscripción y devuelve la función para cancelarla.
func (w *LowStockWatcher) Start() (func(), error) {
	return w.store.Subscribe(recordstore.CollectionProducts, w.onChange)
}

func (w *LowStockWatcher) onChange(ev recordstore.ChangeEvent) {
	var product entity.Product
	if err := json.Unmarshal(ev.Data, &product); err != nil {
		w.log.Warn().Err(err).Str("id", ev.ID).Msg("documento de producto ilegible en suscripción")
		return
	}
	if product.MinStock > 0 && product.Stock <= product.MinStock {
		w.log.Warn().
			Str("product_id", product.ID).
			Str("sku", product.SKU).
			Int64("stock", product.Stock).
			Int64("min_stock", product.MinStock).
			Msg("producto en umbral de reposición")
	}
}
