package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// Colección de productos.
const CollectionProducts = "products"

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa ProductRepository sobre el record store.
type ProductRepo struct {
	store Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(store Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal producto: %w", err)
	}
	if err := r.store.Create(ctx, CollectionProducts, product.ID, doc); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.store.Get(ctx, CollectionProducts, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	var p entity.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal producto %s: %w", id, err)
	}
	return &p, nil
}

// UpdateCatalog escribe los campos de catálogo como patch SIN el campo stock:
// el stock solo muta por CompareAndSwapStock, y un patch que no lo incluye no
// puede revertir un delta concurrente del ledger.
func (r *ProductRepo) UpdateCatalog(ctx context.Context, product *entity.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal producto: %w", err)
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(doc, &patch); err != nil {
		return fmt.Errorf("patch producto %s: %w", product.ID, err)
	}
	delete(patch, "stock")
	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("patch producto %s: %w", product.ID, err)
	}
	return r.store.Update(ctx, CollectionProducts, product.ID, data)
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	docs, err := r.store.GetAll(ctx, CollectionProducts)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		var p entity.Product
		if err := json.Unmarshal(d.Data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal producto %s: %w", d.ID, err)
		}
		out = append(out, &p)
	}
	return out, nil
}

// CompareAndSwapStock intenta stock: expected -> next vía la escritura
// condicional del store. false sin error = otro escritor ganó; el ledger
// relee y reintenta.
func (r *ProductRepo) CompareAndSwapStock(ctx context.Context, id string, expected, next int64) (bool, error) {
	committed, err := r.store.ConditionalUpdate(ctx, CollectionProducts, id, "stock",
		[]byte(strconv.FormatInt(expected, 10)), []byte(strconv.FormatInt(next, 10)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrProductNotFound
		}
		return false, err
	}
	return committed, nil
}
