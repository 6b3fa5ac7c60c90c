package product

import (
	"context"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/pkg/search"
)

// UseCase is the product data access surface. Backend failures are logged
// and turned into empty results, nil, "" or false.
type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int)
	GetProduct(ctx context.Context, id string) *model.Product
	AddProduct(ctx context.Context, input *dto.CreateProductInput) string
	UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) bool
	DeleteProduct(ctx context.Context, id string) bool
	// RemoveImage drops the image at index and keeps the order of the rest.
	RemoveImage(ctx context.Context, id string, index int) bool
}

// ListCache stores serialized list results. Implemented by pkg/cache.RedisClient.
// Get reports a missing key with an error for which IsMiss is true.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	DeletePattern(ctx context.Context, pattern string) error
	IsMiss(err error) bool
}

// SearchIndex is implemented by pkg/search.Client.
type SearchIndex interface {
	CreateIndex(ctx context.Context, index, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.SearchResponse, error)
	Delete(ctx context.Context, index, id string) error
}

// CategoryLookup resolves the soft product -> category reference.
type CategoryLookup interface {
	GetCategoryBySlug(ctx context.Context, slug string) *model.Category
}

type ImageRemover interface {
	DeleteImage(ctx context.Context, url string) error
}
