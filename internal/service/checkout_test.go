package service

import (
	"context"
	"fmt"
	"testing"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	checkout CheckoutService
	fake     *fakeStripeClient
	db       *gorm.DB
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	db := newTestDB(t)
	fake := newFakeStripeClient()

	productRepo := repository.NewProductRepository(db)
	variationRepo := repository.NewVariationRepository(db)
	pricing := NewPricingService(productRepo, variationRepo, testLogger())
	discounts := NewDiscountService(
		repository.NewDiscountRepository(db),
		repository.NewPostPurchaseDiscountRepository(db),
		fake,
		testLogger(),
	)

	checkout := NewCheckoutService(
		db,
		fake,
		repository.NewCartRepository(db),
		productRepo,
		repository.NewOrderRepository(db),
		repository.NewWebhookEventRepository(db),
		pricing,
		discounts,
		testLogger(),
	)

	return &checkoutFixture{checkout: checkout, fake: fake, db: db}
}

func (f *checkoutFixture) seedCart(t *testing.T, userID string) {
	t.Helper()

	require.NoError(t, f.db.Create(&model.Product{ID: 10, Name: "Sea Salt Caramels", BasePrice: 800, Currency: "usd", Visible: true}).Error)
	require.NoError(t, f.db.Create(&model.CartItem{UserID: userID, ProductID: 10, Quantity: 2, Size: "small", Type: "milk", Shape: "none"}).Error)
}

func TestCreateSessionBuildsOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedCart(t, "u1")

	resp, err := f.checkout.CreateSession(ctx, "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.OrderID)
	assert.Equal(t, "cs_test_1", resp.SessionID)
	assert.NotEmpty(t, resp.CheckoutURL)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, "pending", order.Status)
	assert.InDelta(t, 16.00, order.TotalAmount, 1e-9)
	assert.Contains(t, order.Metadata, "cart_items")

	var items []model.OrderItem
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 8.00, items[0].Price, 1e-9)

	var remaining int64
	require.NoError(t, f.db.Model(&model.CartItem{}).Where("user_id = ?", "u1").Count(&remaining).Error)
	assert.Zero(t, remaining)

	require.Len(t, f.fake.sessions, 1)
	require.Len(t, f.fake.sessions[0].Lines, 1)
	assert.Equal(t, int64(800), f.fake.sessions[0].Lines[0].UnitAmount)
	assert.Equal(t, int64(2), f.fake.sessions[0].Lines[0].Quantity)
}

func TestCreateSessionEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.checkout.CreateSession(context.Background(), "nobody", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateSessionWithMirroredCoupon(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedCart(t, "u1")

	require.NoError(t, f.db.Create(&model.Discount{
		Code: "TEN", Type: model.DiscountTypePercentage, Value: 10,
		Active: true, StripeCouponID: "TEN",
	}).Error)

	resp, err := f.checkout.CreateSession(ctx, "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		DiscountCode:  "TEN",
	})
	require.NoError(t, err)

	// processor applies the coupon, lines stay itemized
	require.Len(t, f.fake.sessions, 1)
	assert.Equal(t, "TEN", f.fake.sessions[0].CouponID)
	require.Len(t, f.fake.sessions[0].Lines, 1)

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.InDelta(t, 14.40, order.TotalAmount, 1e-9)
	assert.Equal(t, "TEN", order.DiscountCode)
}

func TestCreateSessionLocalDiscountFallback(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedCart(t, "u1")

	// no mirrored coupon: the session degrades to one aggregate line
	require.NoError(t, f.db.Create(&model.Discount{
		Code: "FIVE", Type: model.DiscountTypeFixed, Value: 5, Active: true,
	}).Error)

	_, err := f.checkout.CreateSession(ctx, "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		DiscountCode:  "FIVE",
	})
	require.NoError(t, err)

	require.Len(t, f.fake.sessions, 1)
	require.Len(t, f.fake.sessions[0].Lines, 1)
	assert.Equal(t, "Order total (discount applied)", f.fake.sessions[0].Lines[0].Name)
	assert.Equal(t, int64(1100), f.fake.sessions[0].Lines[0].UnitAmount) // 16.00 - 5.00
	assert.Empty(t, f.fake.sessions[0].CouponID)
}

func TestCreateSessionRejectsBadDiscount(t *testing.T) {
	f := newCheckoutFixture(t)
	f.seedCart(t, "u1")

	_, err := f.checkout.CreateSession(context.Background(), "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		DiscountCode:  "NOSUCH",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func sessionCompletedPayload(eventID, sessionID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"type":"checkout.session.completed","data":{"object":{"id":%q}}}`,
		eventID, sessionID,
	))
}

func TestWebhookSessionCompletedMarksPaid(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedCart(t, "u1")

	require.NoError(t, f.db.Create(&model.Discount{
		Code: "TEN", Type: model.DiscountTypePercentage, Value: 10,
		Active: true, StripeCouponID: "TEN",
	}).Error)

	resp, err := f.checkout.CreateSession(ctx, "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		DiscountCode:  "TEN",
	})
	require.NoError(t, err)

	payload := sessionCompletedPayload("evt_1", resp.SessionID)
	require.NoError(t, f.checkout.HandleWebhook(ctx, payload, ""))

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, "paid", order.Status)

	// payment counts against the discount ceiling
	var discount model.Discount
	require.NoError(t, f.db.Where("code = ?", "TEN").First(&discount).Error)
	assert.Equal(t, 1, discount.UsedCount)
}

func TestWebhookDeduplicates(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedCart(t, "u1")

	require.NoError(t, f.db.Create(&model.Discount{
		Code: "TEN", Type: model.DiscountTypePercentage, Value: 10,
		Active: true, StripeCouponID: "TEN",
	}).Error)

	resp, err := f.checkout.CreateSession(ctx, "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		DiscountCode:  "TEN",
	})
	require.NoError(t, err)

	payload := sessionCompletedPayload("evt_dup", resp.SessionID)
	require.NoError(t, f.checkout.HandleWebhook(ctx, payload, ""))
	require.NoError(t, f.checkout.HandleWebhook(ctx, payload, ""))

	var discount model.Discount
	require.NoError(t, f.db.Where("code = ?", "TEN").First(&discount).Error)
	assert.Equal(t, 1, discount.UsedCount, "replayed event must not double-count usage")
}

func TestWebhookPaymentIntentSucceeded(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedCart(t, "u1")

	resp, err := f.checkout.CreateSession(ctx, "u1", &dto.CheckoutRequest{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
	})
	require.NoError(t, err)

	var created model.Order
	require.NoError(t, f.db.First(&created, resp.OrderID).Error)

	payload := []byte(fmt.Sprintf(
		`{"id":"evt_pi","type":"payment_intent.succeeded","data":{"object":{"id":%q}}}`,
		created.PaymentIntentID,
	))
	require.NoError(t, f.checkout.HandleWebhook(ctx, payload, ""))

	var order model.Order
	require.NoError(t, f.db.First(&order, resp.OrderID).Error)
	assert.Equal(t, "paid", order.Status)
}

func TestWebhookUnknownPaymentIntentIgnored(t *testing.T) {
	f := newCheckoutFixture(t)

	payload := []byte(`{"id":"evt_x","type":"payment_intent.succeeded","data":{"object":{"id":"pi_unknown"}}}`)
	assert.NoError(t, f.checkout.HandleWebhook(context.Background(), payload, ""))
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	f := newCheckoutFixture(t)

	payload := []byte(`{"id":"evt_other","type":"customer.created","data":{"object":{}}}`)
	require.NoError(t, f.checkout.HandleWebhook(context.Background(), payload, ""))

	var count int64
	require.NoError(t, f.db.Model(&model.WebhookEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "even ignored events are recorded for dedupe")
}
