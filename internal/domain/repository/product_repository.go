package repository

import (
	"context"

	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// CompareAndSwapStock es la primitiva sobre la que el ledger aplica deltas:
// la escritura solo se confirma si el stock almacenado sigue siendo el leído.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// UpdateCatalog escribe los campos de catálogo del producto. Nunca escribe
	// el campo stock: ese solo muta vía CompareAndSwapStock, así una edición de
	// catálogo no puede revertir un delta de stock concurrente.
	UpdateCatalog(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	// CompareAndSwapStock intenta stock: expected -> next. Devuelve false (sin
	// error) si otro escritor ganó la carrera y el valor ya no es expected.
	CompareAndSwapStock(ctx context.Context, id string, expected, next int64) (bool, error)
}
