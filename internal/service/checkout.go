package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"chocolate-storefront/internal/client"
	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"gorm.io/gorm"
)

type CheckoutService interface {
	CreateSession(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	cartRepo         repository.CartRepository
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	webhookEventRepo repository.WebhookEventRepository
	pricing          PricingService
	discounts        DiscountService
	logger           *slog.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	webhookEventRepo repository.WebhookEventRepository,
	pricing PricingService,
	discounts DiscountService,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		cartRepo:         cartRepo,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		webhookEventRepo: webhookEventRepo,
		pricing:          pricing,
		discounts:        discounts,
		logger:           logger,
	}
}

func toCents(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	cartItems, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	orderItems := make([]*model.OrderItem, len(cartItems))
	subtotal := 0.0
	for i, item := range cartItems {
		identifier := strconv.FormatUint(uint64(item.ProductID), 10)
		price := s.pricing.ResolvePrice(ctx, identifier, item.Size, item.Type, item.Shape)

		name := identifier
		if product, err := s.productRepo.FindByID(ctx, item.ProductID); err == nil {
			name = product.Name
		}

		orderItems[i] = &model.OrderItem{
			ProductID: identifier,
			Name:      name,
			Size:      item.Size,
			Type:      item.Type,
			Shape:     item.Shape,
			Quantity:  item.Quantity,
			Price:     price,
		}
		subtotal += price * float64(item.Quantity)
	}

	var discount *model.Discount
	discountAmount := 0.0
	if req.DiscountCode != "" {
		discount, err = s.discounts.Validate(ctx, req.DiscountCode)
		if err != nil {
			return nil, fmt.Errorf("discount %q: %w", req.DiscountCode, err)
		}
		discountAmount = s.discounts.ComputeDiscount(discount, orderItems, subtotal)
	}

	total := decimal.NewFromFloat(subtotal).
		Sub(decimal.NewFromFloat(discountAmount)).
		Round(2).InexactFloat64()

	sessionInput := s.buildSessionInput(req, orderItems, discount, discountAmount, total)

	session, err := s.stripeClient.CreateCheckoutSession(ctx, sessionInput)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"cart_items": orderItems,
	})

	order := &model.Order{
		UserID:          userID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Status:          "pending",
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		DeliveryMethod:  req.DeliveryMethod,
		PaymentIntentID: session.PaymentIntentID,
		SessionID:       session.SessionID,
		DiscountCode:    req.DiscountCode,
		Metadata:        string(metadata),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		if err := s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		return s.cartRepo.Clear(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		OrderID:     order.ID,
		SessionID:   session.SessionID,
		CheckoutURL: session.URL,
	}, nil
}

// buildSessionInput prefers the processor-side coupon. When the coupon was
// never mirrored (or the type is BOGO) the discount degrades to the locally
// computed path: one aggregate line at the discounted total.
func (s *checkoutServiceImpl) buildSessionInput(
	req *dto.CheckoutRequest,
	orderItems []*model.OrderItem,
	discount *model.Discount,
	discountAmount, total float64,
) *client.CheckoutSessionInput {
	in := &client.CheckoutSessionInput{
		CustomerEmail: req.CustomerEmail,
	}

	if discount != nil && discount.StripeCouponID == "" && discountAmount > 0 {
		in.Lines = []client.CheckoutLine{{
			Name:       "Order total (discount applied)",
			UnitAmount: toCents(total),
			Quantity:   1,
		}}
		return in
	}

	in.Lines = make([]client.CheckoutLine, len(orderItems))
	for i, item := range orderItems {
		in.Lines[i] = client.CheckoutLine{
			Name:       item.Name,
			UnitAmount: toCents(item.Price),
			Quantity:   int64(item.Quantity),
		}
	}

	if discount != nil && discount.StripeCouponID != "" {
		in.CouponID = discount.StripeCouponID
	}

	return in
}

func (s *checkoutServiceImpl) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.stripeClient.ParseWebhookEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		s.logger.Info("duplicate webhook event, skipping", "event_id", event.ID)
		return nil
	}

	switch event.Type {
	case "checkout.session.completed":
		err = s.handleSessionCompleted(ctx, event)
	case "payment_intent.succeeded":
		err = s.handlePaymentIntentSucceeded(ctx, event)
	default:
		s.logger.Info("ignoring webhook event", "type", event.Type)
	}
	if err != nil {
		return err
	}

	return s.webhookEventRepo.MarkProcessed(ctx, event.ID, string(event.Type))
}

func (s *checkoutServiceImpl) handleSessionCompleted(ctx context.Context, event *stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	order, err := s.orderRepo.FindBySessionID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("find order for session %s: %w", session.ID, err)
	}

	return s.markOrderPaid(ctx, order)
}

func (s *checkoutServiceImpl) handlePaymentIntentSucceeded(ctx context.Context, event *stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("decode payment intent: %w", err)
	}

	order, err := s.orderRepo.FindByPaymentIntentID(ctx, intent.ID)
	if err != nil {
		// A session-completed event for the same payment usually lands
		// first, so an unknown intent is not an error worth failing on.
		s.logger.Info("no order for payment intent", "payment_intent_id", intent.ID)
		return nil
	}

	return s.markOrderPaid(ctx, order)
}

func (s *checkoutServiceImpl) markOrderPaid(ctx context.Context, order *model.Order) error {
	if order.Status == "paid" {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.orderRepo.MarkPaid(ctx, tx, order.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	if order.DiscountCode != "" {
		if err := s.discounts.RecordUse(ctx, order.DiscountCode); err != nil {
			s.logger.Warn("record discount use", "code", order.DiscountCode, "error", err)
		}
	}

	return nil
}
