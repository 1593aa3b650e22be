package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chocolate-storefront/internal/client"
	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/model"
	"chocolate-storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountService interface {
	Create(ctx context.Context, req *dto.DiscountRequest) (*model.Discount, error)
	Update(ctx context.Context, id uint, req *dto.DiscountRequest) (*model.Discount, error)
	Delete(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint, active bool) (*model.Discount, error)
	List(ctx context.Context) ([]*model.Discount, error)

	// Validate checks the code exists, is active, is inside its validity
	// window and has uses left.
	Validate(ctx context.Context, code string) (*model.Discount, error)
	// ComputeDiscount returns the discount amount in dollars for the given
	// line items and subtotal. The amount never exceeds the subtotal.
	ComputeDiscount(discount *model.Discount, items []*model.OrderItem, subtotal float64) float64
	RecordUse(ctx context.Context, code string) error

	CreatePostPurchase(ctx context.Context, req *dto.PostPurchaseDiscountRequest) (*model.PostPurchaseDiscount, error)
	ListPostPurchase(ctx context.Context) ([]*model.PostPurchaseDiscount, error)
	RedeemPostPurchase(ctx context.Context, code string) (*model.PostPurchaseDiscount, error)
	DeletePostPurchase(ctx context.Context, id uint) error
}

type discountServiceImpl struct {
	discountRepo     repository.DiscountRepository
	postPurchaseRepo repository.PostPurchaseDiscountRepository
	stripeClient     client.StripeClient
	logger           *slog.Logger
}

func NewDiscountService(
	discountRepo repository.DiscountRepository,
	postPurchaseRepo repository.PostPurchaseDiscountRepository,
	stripeClient client.StripeClient,
	logger *slog.Logger,
) DiscountService {
	return &discountServiceImpl{
		discountRepo:     discountRepo,
		postPurchaseRepo: postPurchaseRepo,
		stripeClient:     stripeClient,
		logger:           logger,
	}
}

func (s *discountServiceImpl) Create(ctx context.Context, req *dto.DiscountRequest) (*model.Discount, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	discount := &model.Discount{
		Code:               req.Code,
		Type:               req.Type,
		Value:              req.Value,
		BuyQuantity:        req.BuyQuantity,
		GetQuantity:        req.GetQuantity,
		GetDiscountPercent: req.GetDiscountPercent,
		MaxUses:            req.MaxUses,
		Active:             active,
		StartsAt:           req.StartsAt,
		ExpiresAt:          req.ExpiresAt,
	}

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, fmt.Errorf("create discount: %w", err)
	}

	s.syncCoupon(ctx, discount)

	return discount, nil
}

func (s *discountServiceImpl) Update(ctx context.Context, id uint, req *dto.DiscountRequest) (*model.Discount, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find discount: %w", err)
	}

	discount.Code = req.Code
	discount.Type = req.Type
	discount.Value = req.Value
	discount.BuyQuantity = req.BuyQuantity
	discount.GetQuantity = req.GetQuantity
	discount.GetDiscountPercent = req.GetDiscountPercent
	discount.MaxUses = req.MaxUses
	discount.StartsAt = req.StartsAt
	discount.ExpiresAt = req.ExpiresAt
	if req.Active != nil {
		discount.Active = *req.Active
	}

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, fmt.Errorf("update discount: %w", err)
	}

	s.syncCoupon(ctx, discount)

	return discount, nil
}

func (s *discountServiceImpl) Delete(ctx context.Context, id uint) error {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find discount: %w", err)
	}

	s.dropCoupon(ctx, discount)

	return s.discountRepo.Delete(ctx, id)
}

func (s *discountServiceImpl) SetActive(ctx context.Context, id uint, active bool) (*model.Discount, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find discount: %w", err)
	}

	discount.Active = active
	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, fmt.Errorf("update discount: %w", err)
	}

	if active {
		s.syncCoupon(ctx, discount)
	} else {
		s.dropCoupon(ctx, discount)
	}

	return discount, nil
}

func (s *discountServiceImpl) List(ctx context.Context) ([]*model.Discount, error) {
	return s.discountRepo.List(ctx)
}

// syncCoupon mirrors the discount as a processor coupon. There is no
// transactional guarantee: a failure leaves the local row active with no
// remote coupon and checkout falls back to the local discount path.
func (s *discountServiceImpl) syncCoupon(ctx context.Context, discount *model.Discount) {
	if !discount.Active || discount.Type == model.DiscountTypeBOGO {
		// BOGO has no processor-side coupon shape, it is always computed
		// locally.
		return
	}

	// Recreate rather than patch: coupons are immutable processor-side.
	if discount.StripeCouponID != "" {
		if err := s.stripeClient.DeleteCoupon(ctx, discount.StripeCouponID); err != nil {
			s.logger.Warn("delete stale coupon", "code", discount.Code, "error", err)
		}
	}

	in := &client.CouponInput{
		ID:   discount.Code,
		Name: discount.Code,
	}
	if discount.Type == model.DiscountTypePercentage {
		in.PercentOff = discount.Value
	} else {
		in.AmountOff = decimal.NewFromFloat(discount.Value).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	couponID, err := s.stripeClient.CreateCoupon(ctx, in)
	if err != nil {
		s.logger.Error("coupon sync failed, discount stays local-only", "code", discount.Code, "error", err)
		return
	}

	if err := s.discountRepo.SetStripeCouponID(ctx, discount.ID, couponID); err != nil {
		s.logger.Error("record coupon id", "code", discount.Code, "error", err)
		return
	}
	discount.StripeCouponID = couponID
}

func (s *discountServiceImpl) dropCoupon(ctx context.Context, discount *model.Discount) {
	if discount.StripeCouponID == "" {
		return
	}

	if err := s.stripeClient.DeleteCoupon(ctx, discount.StripeCouponID); err != nil {
		s.logger.Warn("best-effort coupon delete failed", "code", discount.Code, "error", err)
	}

	if err := s.discountRepo.SetStripeCouponID(ctx, discount.ID, ""); err != nil {
		s.logger.Warn("clear coupon id", "code", discount.Code, "error", err)
	}
}

func (s *discountServiceImpl) Validate(ctx context.Context, code string) (*model.Discount, error) {
	discount, err := s.discountRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, ErrNotFound
	}

	if !discount.Active {
		return nil, ErrDiscountExpired
	}

	now := time.Now()
	if discount.StartsAt != nil && now.Before(*discount.StartsAt) {
		return nil, ErrDiscountExpired
	}
	if discount.ExpiresAt != nil && now.After(*discount.ExpiresAt) {
		return nil, ErrDiscountExpired
	}
	if discount.MaxUses > 0 && discount.UsedCount >= discount.MaxUses {
		return nil, ErrDiscountUsedUp
	}

	return discount, nil
}

func (s *discountServiceImpl) ComputeDiscount(discount *model.Discount, items []*model.OrderItem, subtotal float64) float64 {
	sub := decimal.NewFromFloat(subtotal)

	var amount decimal.Decimal
	switch discount.Type {
	case model.DiscountTypePercentage:
		amount = sub.Mul(decimal.NewFromFloat(discount.Value)).Div(decimal.NewFromInt(100))
	case model.DiscountTypeFixed:
		amount = decimal.NewFromFloat(discount.Value)
	case model.DiscountTypeBOGO:
		amount = bogoDiscount(discount, items)
	}

	// Never reduce the chargeable amount below zero.
	if amount.GreaterThan(sub) {
		amount = sub
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return amount.Round(2).InexactFloat64()
}

// bogoDiscount prices the "get" portion: per line, every full buy+get group
// earns get units at GetDiscountPercent off.
func bogoDiscount(discount *model.Discount, items []*model.OrderItem) decimal.Decimal {
	groupSize := discount.BuyQuantity + discount.GetQuantity
	if groupSize <= 0 {
		return decimal.Zero
	}

	pct := decimal.NewFromFloat(discount.GetDiscountPercent).Div(decimal.NewFromInt(100))
	total := decimal.Zero

	for _, item := range items {
		groups := item.Quantity / groupSize
		if groups == 0 {
			continue
		}
		freeUnits := groups * discount.GetQuantity
		lineDiscount := decimal.NewFromFloat(item.Price).
			Mul(decimal.NewFromInt(int64(freeUnits))).
			Mul(pct)
		total = total.Add(lineDiscount)
	}

	return total
}

func (s *discountServiceImpl) RecordUse(ctx context.Context, code string) error {
	discount, err := s.discountRepo.FindByCode(ctx, code)
	if err != nil {
		return ErrNotFound
	}

	return s.discountRepo.IncrementUsage(ctx, discount.ID)
}

func (s *discountServiceImpl) CreatePostPurchase(ctx context.Context, req *dto.PostPurchaseDiscountRequest) (*model.PostPurchaseDiscount, error) {
	discount := &model.PostPurchaseDiscount{
		Code:      "THANKS-" + uuid.NewString()[:8],
		OrderID:   req.OrderID,
		Type:      req.Type,
		Value:     req.Value,
		ExpiresAt: req.ExpiresAt,
	}

	if err := s.postPurchaseRepo.Create(ctx, discount); err != nil {
		return nil, fmt.Errorf("create post-purchase discount: %w", err)
	}

	return discount, nil
}

func (s *discountServiceImpl) ListPostPurchase(ctx context.Context) ([]*model.PostPurchaseDiscount, error) {
	return s.postPurchaseRepo.List(ctx)
}

func (s *discountServiceImpl) RedeemPostPurchase(ctx context.Context, code string) (*model.PostPurchaseDiscount, error) {
	discount, err := s.postPurchaseRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, ErrNotFound
	}

	if discount.Used {
		return nil, ErrDiscountUsedUp
	}
	if discount.ExpiresAt != nil && time.Now().After(*discount.ExpiresAt) {
		return nil, ErrDiscountExpired
	}

	if err := s.postPurchaseRepo.MarkUsed(ctx, discount.ID); err != nil {
		return nil, fmt.Errorf("mark post-purchase discount used: %w", err)
	}
	discount.Used = true

	return discount, nil
}

func (s *discountServiceImpl) DeletePostPurchase(ctx context.Context, id uint) error {
	return s.postPurchaseRepo.Delete(ctx, id)
}
