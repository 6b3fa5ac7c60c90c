package product

import (
	"context"

	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// Update writes only the non-nil fields of patch and stamps updated_at.
	// It reports whether a row matched id.
	Update(ctx context.Context, id string, patch *dto.UpdateProductInput) (bool, error)
	Delete(ctx context.Context, id string) error
}
