package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chocolate-storefront/internal/config"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/coupon"
	"github.com/stripe/stripe-go/v80/webhook"
)

// CheckoutLine is one Stripe line item. UnitAmount is in cents.
type CheckoutLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutSessionInput struct {
	Lines         []CheckoutLine
	CustomerEmail string
	CouponID      string // optional, attach a processor-side coupon
	OrderRef      string // stored in session metadata
}

type CheckoutSessionResult struct {
	SessionID       string
	URL             string
	PaymentIntentID string
}

type CouponInput struct {
	ID         string
	Name       string
	PercentOff float64 // exclusive with AmountOff
	AmountOff  int64   // cents
}

type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, in *CheckoutSessionInput) (*CheckoutSessionResult, error)
	CreateCoupon(ctx context.Context, in *CouponInput) (string, error)
	DeleteCoupon(ctx context.Context, couponID string) error
	// ParseWebhookEvent verifies the signature when a webhook secret is
	// configured, otherwise it trusts the raw body.
	ParseWebhookEvent(payload []byte, sigHeader string) (*stripe.Event, error)
}

type stripeClientImpl struct {
	successURL    string
	cancelURL     string
	webhookSecret string
}

func NewStripeClient(cfg *config.Stripe) StripeClient {
	stripe.Key = cfg.SecretKey

	return &stripeClientImpl{
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, in *CheckoutSessionInput) (*CheckoutSessionResult, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(in.Lines))
	for i, line := range in.Lines {
		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(line.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(line.Quantity),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.Context = ctx

	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}
	if in.CouponID != "" {
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(in.CouponID)},
		}
	}
	if in.OrderRef != "" {
		params.AddMetadata("order_ref", in.OrderRef)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	result := &CheckoutSessionResult{
		SessionID: s.ID,
		URL:       s.URL,
	}
	if s.PaymentIntent != nil {
		result.PaymentIntentID = s.PaymentIntent.ID
	}

	return result, nil
}

func (c *stripeClientImpl) CreateCoupon(ctx context.Context, in *CouponInput) (string, error) {
	params := &stripe.CouponParams{
		ID:       stripe.String(in.ID),
		Name:     stripe.String(in.Name),
		Duration: stripe.String(string(stripe.CouponDurationOnce)),
	}
	params.Context = ctx

	if in.PercentOff > 0 {
		params.PercentOff = stripe.Float64(in.PercentOff)
	} else {
		params.AmountOff = stripe.Int64(in.AmountOff)
		params.Currency = stripe.String("usd")
	}

	cp, err := coupon.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create coupon: %w", err)
	}

	return cp.ID, nil
}

func (c *stripeClientImpl) DeleteCoupon(ctx context.Context, couponID string) error {
	params := &stripe.CouponParams{}
	params.Context = ctx

	if _, err := coupon.Del(couponID, params); err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil
		}
		return fmt.Errorf("stripe delete coupon: %w", err)
	}

	return nil
}

func (c *stripeClientImpl) ParseWebhookEvent(payload []byte, sigHeader string) (*stripe.Event, error) {
	if c.webhookSecret != "" {
		event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
		if err != nil {
			return nil, fmt.Errorf("verify webhook signature: %w", err)
		}
		return &event, nil
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}

	return &event, nil
}
