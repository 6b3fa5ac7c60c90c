package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	categorydto "github.com/fekuna/boutique-catalog-service/internal/category/dto"
	categoryrepo "github.com/fekuna/boutique-catalog-service/internal/category/repository"
	categoryuc "github.com/fekuna/boutique-catalog-service/internal/category/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/model"
	productdto "github.com/fekuna/boutique-catalog-service/internal/product/dto"
	productrepo "github.com/fekuna/boutique-catalog-service/internal/product/repository"
	productuc "github.com/fekuna/boutique-catalog-service/internal/product/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	settingrepo "github.com/fekuna/boutique-catalog-service/internal/setting/repository"
	settinguc "github.com/fekuna/boutique-catalog-service/internal/setting/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/testutil"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *Service
	settings setting.UseCase
	add      func(name string, price float64, category string, featured bool) string
	addCat   func(name, slug string)
}

func newFixture(t *testing.T, pageSize int) fixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.NewNop()

	products := productuc.NewProductUseCase(productrepo.NewSQLRepository(db), productuc.Options{}, log)
	categories := categoryuc.NewCategoryUseCase(categoryrepo.NewSQLRepository(db), nil, log)
	settings := settinguc.NewSettingUseCase(settingrepo.NewSQLRepository(db), time.Minute, nil, log)

	return fixture{
		svc:      NewService(products, categories, settings, pageSize),
		settings: settings,
		add: func(name string, price float64, category string, featured bool) string {
			id := products.AddProduct(context.Background(), &productdto.CreateProductInput{
				Name: name, Price: price, Category: category, Featured: featured, InStock: true,
			})
			require.NotEmpty(t, id)
			return id
		},
		addCat: func(name, slug string) {
			require.NotEmpty(t, categories.AddCategory(context.Background(), &categorydto.CreateCategoryInput{Name: name, Slug: slug}))
		},
	}
}

func TestService_HomeUsesDefaultsAndFeatured(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 0)
	fx.addCat("Wax", "wax")
	fx.addCat("Bazin", "bazin")
	for i := 0; i < 5; i++ {
		fx.add(fmt.Sprintf("Vedette %d", i), 1000, "wax", true)
		fx.add(fmt.Sprintf("Normal %d", i), 1000, "wax", false)
	}

	home := fx.svc.Home(ctx)
	assert.Equal(t, setting.DefaultHomeHero, home.Hero)
	assert.Equal(t, setting.DefaultCollectionBadge, home.Badge)
	assert.Equal(t, "Soumaya Boutique", home.SiteName)
	assert.Len(t, home.Categories, 2)
	require.Len(t, home.Featured, FeaturedCount)
	for _, p := range home.Featured {
		assert.True(t, p.Featured)
		assert.Equal(t, "1 000 FCFA", p.FormattedPrice)
	}
}

func TestService_HomeReadsSettings(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 0)
	require.NoError(t, fx.settings.UpdateSetting(ctx, setting.KeyCollectionBadge, json.RawMessage(`{"text":"Tabaski 2026","visible":false}`), nil))

	home := fx.svc.Home(ctx)
	assert.Equal(t, setting.CollectionBadge{Text: "Tabaski 2026", Visible: false}, home.Badge)
	assert.NotNil(t, home.Featured)
	assert.Empty(t, home.Featured)
}

func TestService_Listing(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 2)
	fx.add("Pagne wax", 5000, "wax", false)
	fx.add("Wax hollandais", 9000, "wax", false)
	fx.add("Bazin riche", 20000, "bazin", false)
	fx.add("Parfum Oud", 15000, "parfums", false)
	fx.add("Wax super", 11000, "wax", false)

	view := fx.svc.Listing(ctx, ListingQuery{Category: "wax"})
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 2, view.TotalPages)
	assert.Len(t, view.Products, 2)
	assert.Equal(t, setting.DefaultProductsHero, view.Hero)

	view = fx.svc.Listing(ctx, ListingQuery{Category: "wax", Page: 2})
	assert.Len(t, view.Products, 1)

	view = fx.svc.Listing(ctx, ListingQuery{Search: "  WAX ", Page: 9})
	assert.Equal(t, "WAX", view.Search)
	assert.Equal(t, 3, view.Total)
	assert.Empty(t, view.Products)
}

func TestService_DetailNotFound(t *testing.T) {
	fx := newFixture(t, 0)

	view := fx.svc.Detail(context.Background(), "does-not-exist", "")
	assert.True(t, view.NotFound)
	assert.Nil(t, view.Product)
	assert.Equal(t, "/products", view.BackLink)
	assert.Empty(t, view.WhatsappURL)
}

func TestService_DetailWhatsappLink(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 0)
	id := fx.add("Grand boubou", 45000, "bazin", false)

	view := fx.svc.Detail(ctx, id, "")
	require.False(t, view.NotFound)
	assert.Equal(t, "45 000 FCFA", view.FormattedPrice)
	assert.Equal(t, LineOne, view.Line)
	assert.Equal(t,
		"https://wa.me/221771494747?text=Bonjour%2C%20je%20suis%20int%C3%A9ress%C3%A9(e)%20par%20le%20produit%20%3A%20Grand%20boubou%20(45%20000%20FCFA)",
		view.WhatsappURL,
	)

	require.NoError(t, fx.settings.UpdateSetting(ctx, setting.KeySiteInfo,
		json.RawMessage(`{"name":"Soumaya","whatsapp":{"ligne1":"","ligne2":"221700000002"}}`), nil))

	view = fx.svc.Detail(ctx, id, LineTwo)
	assert.Equal(t, LineTwo, view.Line)
	assert.Contains(t, view.WhatsappURL, "https://wa.me/221700000002?text=")

	view = fx.svc.Detail(ctx, id, "ligne9")
	assert.Contains(t, view.WhatsappURL, "https://wa.me/221771494747?text=")
}

func TestService_AboutAndContact(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, 0)

	assert.Equal(t, setting.DefaultAboutPage, fx.svc.About(ctx).AboutPage)

	contact := fx.svc.Contact(ctx)
	assert.Equal(t, "contact@soumayaboutique.com", contact.Email)
	require.Len(t, contact.Lines, 2)
	assert.Equal(t, "221779163200", contact.Lines[1].Number)

	require.NoError(t, fx.settings.UpdateSetting(ctx, setting.KeyAboutPage,
		json.RawMessage(`{"heroTitle":"Notre Histoire","title":"Depuis 2014"}`), nil))
	assert.Equal(t, "Depuis 2014", fx.svc.About(ctx).Title)
}

func TestInquiryMessage(t *testing.T) {
	p := &model.Product{Name: "Parfum Oud", Price: 15000}
	assert.Equal(t, "Bonjour, je suis intéressé(e) par le produit : Parfum Oud (15 000 FCFA)", InquiryMessage(p))
}
