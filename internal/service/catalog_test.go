package service

import (
	"context"
	"testing"
	"time"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (CatalogService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	productRepo := repository.NewProductRepository(db)
	variationRepo := repository.NewVariationRepository(db)
	pricing := NewPricingService(productRepo, variationRepo, testLogger())

	svc := NewCatalogService(
		db,
		productRepo,
		variationRepo,
		repository.NewCategoryRepository(db),
		repository.NewReviewRepository(db),
		repository.NewCartRepository(db),
		pricing,
		testLogger(),
	)

	return svc, db
}

func TestProductCreateGetRoundTrip(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &dto.ProductRequest{
		Name:        "Hazelnut Praline",
		Description: "Roasted hazelnut center",
		BasePrice:   1250,
		SizeOptions: []string{"small", "medium", "large"},
		TypeOptions: []string{"milk", "dark"},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Hazelnut Praline", got.Name)
	assert.InDelta(t, 12.50, got.Price, 1e-9) // stored cents normalized for display
	assert.Equal(t, []string{"small", "medium", "large"}, got.SizeOptions)
	assert.Equal(t, []string{"milk", "dark"}, got.TypeOptions)
	assert.Empty(t, got.ShapeOptions)
	assert.True(t, got.Visible)
}

func TestProductUpdatePersistsEveryField(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &dto.ProductRequest{Name: "Plain Bar", BasePrice: 700})
	require.NoError(t, err)

	hidden := false
	_, err = svc.UpdateProduct(ctx, created.ID, &dto.ProductRequest{
		Name:         "Plain Bar 2.0",
		Description:  "now with description",
		BasePrice:    950,
		SizeOptions:  []string{"small"},
		DisplayOrder: 3,
		Visible:      &hidden,
	})
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Plain Bar 2.0", got.Name)
	assert.Equal(t, "now with description", got.Description)
	assert.InDelta(t, 9.50, got.Price, 1e-9)
	assert.Equal(t, []string{"small"}, got.SizeOptions)
	assert.Equal(t, 3, got.DisplayOrder)
	assert.False(t, got.Visible)
}

func TestListProductsHidesInvisibleByDefault(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Product{Name: "Visible", BasePrice: 500, Currency: "usd", Visible: true}).Error)
	require.NoError(t, db.Create(&model.Product{Name: "Hidden", BasePrice: 500, Currency: "usd", Visible: false}).Error)

	public, err := svc.ListProducts(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Visible", public[0].Name)

	admin, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}

func TestProductSalePrice(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	end := time.Now().Add(24 * time.Hour)
	product := &model.Product{
		Name: "Sale Bar", BasePrice: 1000, Currency: "usd", Visible: true,
		SaleType: "percentage", SaleValue: 20, SaleActive: true, SaleEndDate: &end,
	}
	require.NoError(t, db.Create(product).Error)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SalePrice)
	assert.InDelta(t, 8.00, *got.SalePrice, 1e-9)
}

func TestProductExpiredSaleNotApplied(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	end := time.Now().Add(-time.Hour)
	product := &model.Product{
		Name: "Old Sale", BasePrice: 1000, Currency: "usd", Visible: true,
		SaleType: "fixed", SaleValue: 2, SaleActive: true, SaleEndDate: &end,
	}
	require.NoError(t, db.Create(product).Error)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SalePrice)
}

func TestDeleteProductCascades(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	product := &model.Product{Name: "Doomed", BasePrice: 500, Currency: "usd", Visible: true}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(&model.Review{ProductID: product.ID, Rating: 5, Comment: "great"}).Error)
	require.NoError(t, db.Create(&model.ProductImage{ProductID: product.ID, URL: "/uploads/x.jpg"}).Error)
	require.NoError(t, db.Create(&model.CartItem{UserID: "u1", ProductID: product.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&model.ProductPriceVariation{ProductID: product.ID, Size: "large", PriceModifier: 200}).Error)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"reviews", &model.Review{}},
		{"images", &model.ProductImage{}},
		{"cart items", &model.CartItem{}},
		{"variations", &model.ProductPriceVariation{}},
	} {
		var count int64
		require.NoError(t, db.Model(probe.model).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Zero(t, count, "%s should be gone", probe.name)
	}

	_, err := svc.GetProduct(ctx, product.ID)
	assert.Error(t, err)
}

func TestVariationCRUD(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()

	product := &model.Product{Name: "Bar", BasePrice: 500, Currency: "usd", Visible: true}
	require.NoError(t, db.Create(product).Error)

	v, err := svc.AddVariation(ctx, product.ID, &dto.VariationRequest{
		Size: "large", PriceModifier: 300, DisplayOrder: 1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateVariation(ctx, v.ID, &dto.VariationRequest{
		Size: "large", PriceModifier: 400, IsAbsolute: true, DisplayOrder: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, product.ID, updated.ProductID)
	assert.Equal(t, 400, updated.PriceModifier)
	assert.True(t, updated.IsAbsolute)

	list, err := svc.ListVariations(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteVariation(ctx, v.ID))

	list, err = svc.ListVariations(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryCRUD(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &dto.CategoryRequest{Name: "Truffles", DisplayOrder: 1})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, created.ID, &dto.CategoryRequest{Name: "Truffles & Bonbons", DisplayOrder: 2})
	require.NoError(t, err)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Truffles & Bonbons", list[0].Name)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))

	list, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
