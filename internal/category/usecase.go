package category

import (
	"context"

	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/model"
)

// UseCase is the category data access surface. Backend failures are logged
// and turned into empty results, nil, "" or false; callers never see them.
type UseCase interface {
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int)
	GetCategory(ctx context.Context, id string) *model.Category
	GetCategoryBySlug(ctx context.Context, slug string) *model.Category
	AddCategory(ctx context.Context, input *dto.CreateCategoryInput) string
	UpdateCategory(ctx context.Context, id string, input *dto.UpdateCategoryInput) bool
	DeleteCategory(ctx context.Context, id string) bool
}
