// Package seed restores the default site settings and loads the sample
// catalog used by demo and development databases.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fekuna/boutique-catalog-service/internal/category"
	categorydto "github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	productdto "github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

const resetBatch = 1000

type Seeder struct {
	categories category.UseCase
	products   product.UseCase
	settings   setting.UseCase
	logger     logger.ZapLogger
}

func NewSeeder(categories category.UseCase, products product.UseCase, settings setting.UseCase, log logger.ZapLogger) *Seeder {
	return &Seeder{categories: categories, products: products, settings: settings, logger: log}
}

// Result counts the rows written by one run.
type Result struct {
	Settings   int
	Categories int
	Products   int
	Failed     int
}

// RestoreSettings upserts every built-in setting with its description. It
// stops at the first failure.
func (s *Seeder) RestoreSettings(ctx context.Context) (Result, error) {
	var res Result
	for _, d := range setting.Defaults() {
		value, err := json.Marshal(d.Value)
		if err != nil {
			return res, fmt.Errorf("encode %s: %w", d.Key, err)
		}
		desc := d.Description
		if err := s.settings.UpdateSetting(ctx, d.Key, value, &desc); err != nil {
			return res, err
		}
		s.logger.Info("setting restored", zap.String("key", d.Key))
		res.Settings++
	}
	return res, nil
}

// SampleCatalog inserts the demo categories and products. With reset the
// existing catalog is deleted first. Rows that fail are logged and counted,
// the run goes on.
func (s *Seeder) SampleCatalog(ctx context.Context, reset bool) (Result, error) {
	var res Result
	if reset {
		if err := s.clear(ctx); err != nil {
			return res, err
		}
	}

	for i := range sampleCategories {
		in := sampleCategories[i]
		if s.categories.AddCategory(ctx, &in) == "" {
			s.logger.Warn("sample category not inserted", zap.String("slug", in.Slug))
			res.Failed++
			continue
		}
		res.Categories++
	}
	for i := range sampleProducts {
		in := sampleProducts[i]
		in.Images = append([]string(nil), in.Images...)
		if s.products.AddProduct(ctx, &in) == "" {
			s.logger.Warn("sample product not inserted", zap.String("name", in.Name))
			res.Failed++
			continue
		}
		res.Products++
	}
	return res, nil
}

// clear removes products before categories so a store enforcing the
// reference never sees a dangling slug.
func (s *Seeder) clear(ctx context.Context) error {
	products, _ := s.products.ListProducts(ctx, &productdto.ProductFilters{Limit: resetBatch})
	for _, p := range products {
		if !s.products.DeleteProduct(ctx, p.ID) {
			return fmt.Errorf("delete product %s", p.ID)
		}
	}
	categories, _ := s.categories.ListCategories(ctx, &categorydto.CategoryFilters{Limit: resetBatch})
	for _, c := range categories {
		if !s.categories.DeleteCategory(ctx, c.ID) {
			return fmt.Errorf("delete category %s", c.ID)
		}
	}
	s.logger.Info("catalog cleared", zap.Int("products", len(products)), zap.Int("categories", len(categories)))
	return nil
}
