// Package dashboard computes the admin landing page statistics.
package dashboard

import (
	"context"

	"github.com/fekuna/boutique-catalog-service/internal/category"
	categorydto "github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	productdto "github.com/fekuna/boutique-catalog-service/internal/product/dto"
)

const (
	scanLimit   = 1000
	recentCount = 5
)

type Stats struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	OutOfStock      int             `json:"outOfStockCount"`
	Featured        int             `json:"featuredCount"`
	RecentProducts  []model.Product `json:"recentProducts"`
}

type Service struct {
	products   product.UseCase
	categories category.UseCase
}

func NewService(products product.UseCase, categories category.UseCase) *Service {
	return &Service{products: products, categories: categories}
}

// Stats reads up to 1000 products, newest first. Out-of-stock and featured
// counts only cover that window; totals come from the store.
func (s *Service) Stats(ctx context.Context) Stats {
	products, productTotal := s.products.ListProducts(ctx, &productdto.ProductFilters{Limit: scanLimit})
	_, categoryTotal := s.categories.ListCategories(ctx, &categorydto.CategoryFilters{Limit: scanLimit})

	st := Stats{
		TotalProducts:   productTotal,
		TotalCategories: categoryTotal,
		RecentProducts:  products[:min(recentCount, len(products))],
	}
	for _, p := range products {
		if !p.InStock {
			st.OutOfStock++
		}
		if p.Featured {
			st.Featured++
		}
	}
	return st
}
