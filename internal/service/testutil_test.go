package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"chocolate-storefront/internal/client"

	"github.com/stripe/stripe-go/v80"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	if err := client.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeStripeClient records calls instead of hitting the processor.
type fakeStripeClient struct {
	mu sync.Mutex

	coupons        map[string]*client.CouponInput
	createErr      error
	sessions       []*client.CheckoutSessionInput
	sessionCounter int

	events map[string]*stripe.Event
}

func newFakeStripeClient() *fakeStripeClient {
	return &fakeStripeClient{
		coupons: map[string]*client.CouponInput{},
		events:  map[string]*stripe.Event{},
	}
}

func (f *fakeStripeClient) CreateCheckoutSession(_ context.Context, in *client.CheckoutSessionInput) (*client.CheckoutSessionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessions = append(f.sessions, in)
	f.sessionCounter++

	return &client.CheckoutSessionResult{
		SessionID:       fmt.Sprintf("cs_test_%d", f.sessionCounter),
		URL:             "https://checkout.stripe.test/session",
		PaymentIntentID: fmt.Sprintf("pi_test_%d", f.sessionCounter),
	}, nil
}

func (f *fakeStripeClient) CreateCoupon(_ context.Context, in *client.CouponInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}

	f.coupons[in.ID] = in
	return in.ID, nil
}

func (f *fakeStripeClient) DeleteCoupon(_ context.Context, couponID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// resource_missing is swallowed by the real client too
	delete(f.coupons, couponID)
	return nil
}

func (f *fakeStripeClient) ParseWebhookEvent(payload []byte, _ string) (*stripe.Event, error) {
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
