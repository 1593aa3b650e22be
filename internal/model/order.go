package model

import "time"

type Order struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        string `gorm:"size:64;index"`
	CustomerName  string `gorm:"size:128"`
	CustomerEmail string `gorm:"size:256;index"`
	CustomerPhone string `gorm:"size:32"`
	Status        string `gorm:"size:32;index;not null"` // pending, paid, processing, shipped, delivered, cancelled
	// TotalAmount is in dollars.
	TotalAmount     float64
	ShippingAddress string `gorm:"type:text"` // free text, comma or newline separated
	DeliveryMethod  string `gorm:"size:32"`
	PaymentIntentID string `gorm:"size:128;index"`
	SessionID       string `gorm:"size:128;index"`
	DiscountCode    string `gorm:"size:64"`
	// Metadata is a JSON blob. Legacy orders carry their cart under
	// metadata.cart_items with no order_items rows at all.
	Metadata string `gorm:"type:text"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`
	// ProductID is a string: a numeric id for current rows, a legacy slug
	// ("classic", "DubaiBar") for old ones.
	ProductID string `gorm:"size:64;index;not null"`
	Name      string `gorm:"size:128"`
	Size      string `gorm:"size:32"`
	Type      string `gorm:"size:32"`
	Shape     string `gorm:"size:32"`
	Quantity  int    `gorm:"not null"`
	// Price is the unit price in dollars.
	Price     float64
	CreatedAt time.Time
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index;not null"`
	ProductID uint   `gorm:"index;not null"`
	Size      string `gorm:"size:32"`
	Type      string `gorm:"size:32"`
	Shape     string `gorm:"size:32"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
