package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/events"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	indexName         = "products"
	listCachePrefix   = "products:list:"
	listGenerationKey = "products:listgen"
	defaultCacheTTL   = 5 * time.Minute
	searchSyncTimeout = 10 * time.Second
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"id":         { "type": "keyword" },
			"name":       { "type": "text" },
			"name_lc":    { "type": "keyword" },
			"category":   { "type": "keyword" },
			"featured":   { "type": "boolean" },
			"inStock":    { "type": "boolean" },
			"price":      { "type": "double" },
			"createdAt":  { "type": "date" }
		}
	}
}`

// Options carries the optional collaborators of the product use case. Nil
// fields disable the matching feature.
type Options struct {
	Cache      product.ListCache
	CacheTTL   time.Duration
	Search     product.SearchIndex
	Publisher  events.Publisher
	Categories product.CategoryLookup // set to reject unknown category slugs
	Images     product.ImageRemover
}

type productUseCase struct {
	repo       product.Repository
	cache      product.ListCache
	cacheTTL   time.Duration
	es         product.SearchIndex
	publisher  events.Publisher
	categories product.CategoryLookup
	images     product.ImageRemover
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewProductUseCase(repo product.Repository, opts Options, log logger.ZapLogger) product.UseCase {
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &productUseCase{
		repo:       repo,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		es:         opts.Search,
		publisher:  opts.Publisher,
		categories: opts.Categories,
		images:     opts.Images,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	cacheKey := uc.cacheKey(ctx, filters)
	if cacheKey != "" {
		if data, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var hit cachedList
			if err := json.Unmarshal(data, &hit); err == nil {
				return hit.Products, hit.Count
			}
		}
	}

	if filters.SearchTerm != "" && uc.es != nil {
		products, count, err := uc.searchIndex(ctx, filters)
		if err == nil {
			return products, count
		}
		uc.logger.Warn("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		uc.logger.Error("Error fetching products", zap.Error(err))
		return []model.Product{}, 0
	}

	if cacheKey != "" {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}

	return products, count
}

// cacheKey embeds the list generation read before the database query. A read
// racing a write then stores its rows under a generation nobody asks for
// anymore. An empty key disables caching for the call.
func (uc *productUseCase) cacheKey(ctx context.Context, filters *dto.ProductFilters) string {
	if uc.cache == nil {
		return ""
	}
	gen := "0"
	raw, err := uc.cache.Get(ctx, listGenerationKey)
	switch {
	case err == nil:
		gen = string(raw)
	case !uc.cache.IsMiss(err):
		uc.logger.Warn("failed to read product list generation", zap.Error(err))
		return ""
	}
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%s:%x", listCachePrefix, gen, md5.Sum(data))
}

// invalidateLists runs before a write returns so the next list read sees it.
func (uc *productUseCase) invalidateLists(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if _, err := uc.cache.Incr(ctx, listGenerationKey); err != nil {
		uc.logger.Warn("failed to bump product list generation", zap.Error(err))
	}
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}

type searchDoc struct {
	model.Product
	NameLC string `json:"name_lc"`
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func (uc *productUseCase) searchIndex(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	filter := []map[string]interface{}{
		{"wildcard": map[string]interface{}{
			"name_lc": map[string]interface{}{
				"value": "*" + wildcardEscaper.Replace(strings.ToLower(f.SearchTerm)) + "*",
			},
		}},
	}
	if f.Category != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": f.Category}})
	}
	if f.Featured != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"featured": *f.Featured}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filter},
		},
		"sort": []map[string]interface{}{
			{"createdAt": map[string]interface{}{"order": "desc"}},
			{"id": map[string]interface{}{"order": "desc"}},
		},
	}
	page := query.Page{Page: f.Page, Limit: f.Limit}
	switch {
	case page.OutOfRange():
		q["size"] = 0
	case page.Paged():
		q["from"] = page.Offset()
		q["size"] = page.Limit
	case f.Limit > 0:
		q["size"] = f.Limit
	case f.LimitCount > 0:
		q["size"] = f.LimitCount
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			return nil, 0, fmt.Errorf("decode hit %s: %w", hit.ID, err)
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) syncToElastic(p *model.Product) {
	if uc.es == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), searchSyncTimeout)
		defer cancel()

		_ = uc.es.CreateIndex(ctx, indexName, indexMapping)
		doc := searchDoc{Product: *p, NameLC: strings.ToLower(p.Name)}
		if err := uc.es.Index(ctx, indexName, p.ID, doc); err != nil {
			uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
		}
	}()
}

func (uc *productUseCase) removeFromElastic(id string) {
	if uc.es == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), searchSyncTimeout)
		defer cancel()

		if err := uc.es.Delete(ctx, indexName, id); err != nil {
			uc.logger.Error("failed to delete product from ES", zap.String("id", id), zap.Error(err))
		}
	}()
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) *model.Product {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("Error fetching product", zap.String("id", id), zap.Error(err))
		return nil
	}
	return p
}

func (uc *productUseCase) knownCategory(ctx context.Context, slug string) bool {
	if uc.categories == nil {
		return true
	}
	if uc.categories.GetCategoryBySlug(ctx, slug) == nil {
		uc.logger.Warn("Unknown product category", zap.String("category", slug))
		return false
	}
	return true
}

func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.CreateProductInput) string {
	if !uc.knownCategory(ctx, input.Category) {
		return ""
	}

	now := uc.now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Images:      model.StringList(input.Images),
		InStock:     input.InStock,
		Featured:    input.Featured,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Error("Error adding product", zap.String("name", input.Name), zap.Error(err))
		return ""
	}

	uc.invalidateLists(ctx)
	uc.syncToElastic(p)
	uc.publisher.Publish(ctx, events.ProductCreated, p.ID)
	return p.ID
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) bool {
	if input.Category != nil && !uc.knownCategory(ctx, *input.Category) {
		return false
	}

	found, err := uc.repo.Update(ctx, id, input)
	if err != nil {
		uc.logger.Error("Error updating product", zap.String("id", id), zap.Error(err))
		return false
	}
	if !found {
		uc.logger.Warn("Product to update not found", zap.String("id", id))
		return false
	}

	uc.invalidateLists(ctx)
	if uc.es != nil {
		if p, err := uc.repo.FindByID(ctx, id); err == nil && p != nil {
			uc.syncToElastic(p)
		}
	}
	uc.publisher.Publish(ctx, events.ProductUpdated, id)
	return true
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) bool {
	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("Error deleting product", zap.String("id", id), zap.Error(err))
		return false
	}

	uc.invalidateLists(ctx)
	uc.removeFromElastic(id)
	uc.publisher.Publish(ctx, events.ProductDeleted, id)
	return true
}

func (uc *productUseCase) RemoveImage(ctx context.Context, id string, index int) bool {
	p := uc.GetProduct(ctx, id)
	if p == nil {
		return false
	}
	if index < 0 || index >= len(p.Images) {
		uc.logger.Warn("Image index out of range", zap.String("id", id), zap.Int("index", index))
		return false
	}

	removed := p.Images[index]
	images := make([]string, 0, len(p.Images)-1)
	images = append(images, p.Images[:index]...)
	images = append(images, p.Images[index+1:]...)

	if !uc.UpdateProduct(ctx, id, &dto.UpdateProductInput{Images: &images}) {
		return false
	}

	// Storage cleanup is best effort once the product no longer lists the URL.
	if uc.images != nil {
		if err := uc.images.DeleteImage(ctx, removed); err != nil {
			uc.logger.Warn("failed to delete image object", zap.String("url", removed), zap.Error(err))
		}
	}
	return true
}
