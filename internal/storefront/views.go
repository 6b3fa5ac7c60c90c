package storefront

import (
	"github.com/fekuna/boutique-catalog-service/internal/model"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
)

type ProductCard struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	FormattedPrice string  `json:"formattedPrice"`
	Category       string  `json:"category"`
	Cover          string  `json:"cover,omitempty"`
	InStock        bool    `json:"inStock"`
	Featured       bool    `json:"featured"`
}

type HomeView struct {
	Hero              setting.HomeHero          `json:"hero"`
	Badge             setting.CollectionBadge   `json:"badge"`
	CategoriesSection setting.CategoriesSection `json:"categoriesSection"`
	SiteName          string                    `json:"siteName"`
	Categories        []model.Category          `json:"categories"`
	Featured          []ProductCard             `json:"featured"`
}

type ListingQuery struct {
	Category string
	Search   string
	Page     int
}

type ListingView struct {
	Hero       setting.ProductsHero `json:"hero"`
	Categories []model.Category     `json:"categories"`
	Category   string               `json:"category,omitempty"`
	Search     string               `json:"search,omitempty"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"totalPages"`
	Products   []ProductCard        `json:"products"`
}

type WhatsappLine struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Number string `json:"number"`
}

type DetailView struct {
	NotFound       bool           `json:"notFound"`
	BackLink       string         `json:"backLink"`
	Product        *model.Product `json:"product,omitempty"`
	FormattedPrice string         `json:"formattedPrice,omitempty"`
	Line           string         `json:"line,omitempty"`
	Lines          []WhatsappLine `json:"lines,omitempty"`
	WhatsappURL    string         `json:"whatsappUrl,omitempty"`
}

type AboutView struct {
	setting.AboutPage
	SiteName string `json:"siteName"`
}

type ContactView struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Address string         `json:"address"`
	Lines   []WhatsappLine `json:"lines"`
}
