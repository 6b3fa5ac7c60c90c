package category

import (
	"context"

	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	// Update writes only the non-nil fields of patch and stamps updated_at.
	// It reports whether a row matched id.
	Update(ctx context.Context, id string, patch *dto.UpdateCategoryInput) (bool, error)
	Delete(ctx context.Context, id string) error
}
