// Package storefront composes the read-only public pages from products,
// categories and settings.
package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fekuna/boutique-catalog-service/internal/category"
	"github.com/fekuna/boutique-catalog-service/internal/format"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	productdto "github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
)

const (
	DefaultPageSize = 12
	FeaturedCount   = 4
	ProductsPath    = "/products"

	LineOne = "ligne1"
	LineTwo = "ligne2"
)

type Service struct {
	products   product.UseCase
	categories category.UseCase
	settings   setting.UseCase
	pageSize   int
}

func NewService(products product.UseCase, categories category.UseCase, settings setting.UseCase, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{products: products, categories: categories, settings: settings, pageSize: pageSize}
}

func card(p model.Product) ProductCard {
	return ProductCard{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price,
		FormattedPrice: format.Price(p.Price),
		Category:       p.Category,
		Cover:          p.CoverImage(),
		InStock:        p.InStock,
		Featured:       p.Featured,
	}
}

func cards(products []model.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, card(p))
	}
	return out
}

func siteInfo(s setting.Snapshot) setting.SiteInfo {
	info, ok := s.SiteInfo()
	if !ok {
		return setting.DefaultSiteInfo
	}
	return info
}

func (s *Service) Home(ctx context.Context) HomeView {
	snap := s.settings.GetSettings(ctx)

	hero, ok := snap.HomeHero()
	if !ok {
		hero = setting.DefaultHomeHero
	}
	badge, ok := snap.CollectionBadge()
	if !ok {
		badge = setting.DefaultCollectionBadge
	}
	section, ok := snap.CategoriesSection()
	if !ok {
		section = setting.DefaultCategoriesSection
	}

	categories, _ := s.categories.ListCategories(ctx, nil)
	featured := true
	products, _ := s.products.ListProducts(ctx, &productdto.ProductFilters{
		Featured:   &featured,
		LimitCount: FeaturedCount,
	})

	return HomeView{
		Hero:              hero,
		Badge:             badge,
		CategoriesSection: section,
		SiteName:          siteInfo(snap).Name,
		Categories:        categories,
		Featured:          cards(products),
	}
}

func (s *Service) Listing(ctx context.Context, q ListingQuery) ListingView {
	hero, ok := s.settings.GetSettings(ctx).ProductsHero()
	if !ok {
		hero = setting.DefaultProductsHero
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	search := strings.TrimSpace(q.Search)

	categories, _ := s.categories.ListCategories(ctx, nil)
	products, total := s.products.ListProducts(ctx, &productdto.ProductFilters{
		Category:   q.Category,
		SearchTerm: search,
		Page:       page,
		Limit:      s.pageSize,
	})

	return ListingView{
		Hero:       hero,
		Categories: categories,
		Category:   q.Category,
		Search:     search,
		Page:       page,
		Limit:      s.pageSize,
		Total:      total,
		TotalPages: query.TotalPages(total, s.pageSize),
		Products:   cards(products),
	}
}

// WhatsappLines returns both configured lines, each falling back to its
// built-in number.
func WhatsappLines(info setting.SiteInfo) []WhatsappLine {
	one, two := info.Whatsapp.Ligne1, info.Whatsapp.Ligne2
	if one == "" {
		one = setting.DefaultSiteInfo.Whatsapp.Ligne1
	}
	if two == "" {
		two = setting.DefaultSiteInfo.Whatsapp.Ligne2
	}
	return []WhatsappLine{
		{Key: LineOne, Label: "Ligne 1", Number: one},
		{Key: LineTwo, Label: "Ligne 2", Number: two},
	}
}

// InquiryMessage is the text pre-filled in the WhatsApp conversation.
func InquiryMessage(p *model.Product) string {
	return fmt.Sprintf("Bonjour, je suis intéressé(e) par le produit : %s (%s)", p.Name, format.Price(p.Price))
}

// WhatsappURL builds https://wa.me/<number>?text=<message>, escaping the
// message the way browsers escape URI components.
func WhatsappURL(number, message string) string {
	return "https://wa.me/" + number + "?text=" + escapeComponent(message)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Detail resolves product id. An unknown id yields a NotFound view pointing
// back to the listing. line picks the WhatsApp line; anything but ligne2
// means ligne1.
func (s *Service) Detail(ctx context.Context, id, line string) DetailView {
	p := s.products.GetProduct(ctx, id)
	if p == nil {
		return DetailView{NotFound: true, BackLink: ProductsPath}
	}

	lines := WhatsappLines(siteInfo(s.settings.GetSettings(ctx)))
	chosen := lines[0]
	if line == LineTwo {
		chosen = lines[1]
	}

	return DetailView{
		BackLink:       ProductsPath,
		Product:        p,
		FormattedPrice: format.Price(p.Price),
		Line:           chosen.Key,
		Lines:          lines,
		WhatsappURL:    WhatsappURL(chosen.Number, InquiryMessage(p)),
	}
}

func (s *Service) About(ctx context.Context) AboutView {
	snap := s.settings.GetSettings(ctx)
	about, ok := snap.AboutPage()
	if !ok {
		about = setting.DefaultAboutPage
	}
	return AboutView{AboutPage: about, SiteName: siteInfo(snap).Name}
}

func (s *Service) Contact(ctx context.Context) ContactView {
	info := siteInfo(s.settings.GetSettings(ctx))
	return ContactView{
		Name:    info.Name,
		Email:   info.Email,
		Address: info.Address,
		Lines:   WhatsappLines(info),
	}
}
