package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock posterior al alta
// se maneja exclusivamente vía el libro de stock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movementRepo repository.MovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movementRepo: movementRepo}
}

// Create crea un producto. El stock inicial queda registrado con un movimiento
// de ajuste para que el rastro explique el arranque.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.MinStock < 0 || in.MaxStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchaseCost.IsNegative() || in.CurrentPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MinSalePrice.GreaterThan(in.MaxSalePrice) && !in.MaxSalePrice.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Stock:        in.Stock,
		PurchaseCost: in.PurchaseCost,
		CurrentPrice: in.CurrentPrice,
		MinSalePrice: in.MinSalePrice,
		MaxSalePrice: in.MaxSalePrice,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if in.Stock > 0 {
		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Direction: entity.DirectionIn,
			Quantity:  in.Stock,
			Reason:    entity.ReasonAdjust,
			Reference: "initial-load",
			CreatedAt: now,
			CreatedBy: actorID,
		}
		if err := uc.movementRepo.Create(ctx, movement); err != nil {
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos de catálogo. El stock no se toca: solo muta a
// través del ledger.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if !in.PurchaseCost.IsZero() {
		product.PurchaseCost = in.PurchaseCost
	}
	if !in.CurrentPrice.IsZero() {
		product.CurrentPrice = in.CurrentPrice
	}
	if !in.MinSalePrice.IsZero() {
		product.MinSalePrice = in.MinSalePrice
	}
	if !in.MaxSalePrice.IsZero() {
		product.MaxSalePrice = in.MaxSalePrice
	}
	if in.MinStock > 0 {
		product.MinStock = in.MinStock
	}
	if in.MaxStock > 0 {
		product.MaxStock = in.MaxStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.UpdateCatalog(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Stock:        p.Stock,
		PurchaseCost: p.PurchaseCost,
		CurrentPrice: p.CurrentPrice,
		MinSalePrice: p.MinSalePrice,
		MaxSalePrice: p.MaxSalePrice,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
