package model

import "time"

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
	DiscountTypeBOGO       = "bogo"
)

type Discount struct {
	ID    uint   `gorm:"primaryKey"`
	Code  string `gorm:"size:64;uniqueIndex;not null"`
	Type  string `gorm:"size:16;not null"` // percentage, fixed, bogo
	Value float64
	// BOGO terms: buy BuyQuantity, get GetQuantity at GetDiscountPercent off.
	BuyQuantity        int
	GetQuantity        int
	GetDiscountPercent float64

	UsedCount int
	MaxUses   int // 0 means unlimited
	Active    bool
	StartsAt  *time.Time
	ExpiresAt *time.Time

	// StripeCouponID is set once the code has been mirrored as a processor
	// coupon. Empty means checkout falls back to the local discount path.
	StripeCouponID string `gorm:"size:128"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostPurchaseDiscount is a one-off code handed out after an order completes.
type PostPurchaseDiscount struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"size:64;uniqueIndex;not null"`
	OrderID   uint   `gorm:"index"`
	Type      string `gorm:"size:16;not null"`
	Value     float64
	Used      bool
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
