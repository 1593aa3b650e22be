package dto

import "time"

// -------- catalog --------

type ProductRequest struct {
	Name          string     `json:"name" validate:"required,max=128"`
	Description   string     `json:"description"`
	BasePrice     int        `json:"base_price" validate:"gte=0"`
	CategoryID    *uint      `json:"category_id"`
	SizeOptions   []string   `json:"size_options"`
	TypeOptions   []string   `json:"type_options"`
	ShapeOptions  []string   `json:"shape_options"`
	SaleType      string     `json:"sale_type" validate:"omitempty,oneof=percentage fixed"`
	SaleValue     float64    `json:"sale_value"`
	SaleActive    bool       `json:"sale_active"`
	SaleStartDate *time.Time `json:"sale_start_date"`
	SaleEndDate   *time.Time `json:"sale_end_date"`
	DisplayOrder  int        `json:"display_order"`
	Visible       *bool      `json:"visible"`
}

type ProductResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"` // resolved display price in dollars
	CategoryID   *uint    `json:"category_id,omitempty"`
	SizeOptions  []string `json:"size_options"`
	TypeOptions  []string `json:"type_options"`
	ShapeOptions []string `json:"shape_options"`
	SaleActive   bool     `json:"sale_active"`
	SalePrice    *float64 `json:"sale_price,omitempty"`
	DisplayOrder int      `json:"display_order"`
	Visible      bool     `json:"visible"`
	Images       []string `json:"images"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
}

type VariationRequest struct {
	Size          string `json:"size" validate:"max=32"`
	Type          string `json:"type" validate:"max=32"`
	Shape         string `json:"shape" validate:"max=32"`
	PriceModifier int    `json:"price_modifier"`
	IsAbsolute    bool   `json:"is_absolute"`
	DisplayOrder  int    `json:"display_order"`
}

type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=128"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type PriceQuery struct {
	ProductID string `query:"product_id" validate:"required"`
	Size      string `query:"size"`
	Type      string `query:"type"`
	Shape     string `query:"shape"`
}

type PriceResponse struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
}

// -------- cart / checkout --------

type CartItemRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Type      string `json:"type"`
	Shape     string `json:"shape"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,max=128"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	DeliveryMethod  string `json:"delivery_method" validate:"omitempty,oneof=pickup delivery shipping"`
	DiscountCode    string `json:"discount_code"`
}

type CheckoutResponse struct {
	OrderID     uint   `json:"order_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type ApplyDiscountRequest struct {
	Code   string  `json:"code" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type ApplyDiscountResponse struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// -------- discounts --------

type DiscountRequest struct {
	Code               string     `json:"code" validate:"required,max=64"`
	Type               string     `json:"type" validate:"required,oneof=percentage fixed bogo"`
	Value              float64    `json:"value" validate:"gte=0"`
	BuyQuantity        int        `json:"buy_quantity"`
	GetQuantity        int        `json:"get_quantity"`
	GetDiscountPercent float64    `json:"get_discount_percent"`
	MaxUses            int        `json:"max_uses"`
	Active             *bool      `json:"active"`
	StartsAt           *time.Time `json:"starts_at"`
	ExpiresAt          *time.Time `json:"expires_at"`
}

type PostPurchaseDiscountRequest struct {
	OrderID   uint       `json:"order_id"`
	Type      string     `json:"type" validate:"required,oneof=percentage fixed"`
	Value     float64    `json:"value" validate:"gte=0"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// -------- orders --------

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Type      string  `json:"type,omitempty"`
	Shape     string  `json:"shape,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// -------- custom orders --------

type CustomOrderRequest struct {
	CustomerName  string     `json:"customer_name" validate:"required,max=128"`
	CustomerEmail string     `json:"customer_email" validate:"required,email"`
	CustomerPhone string     `json:"customer_phone"`
	Occasion      string     `json:"occasion"`
	Flavors       []string   `json:"flavors"`
	Quantity      int        `json:"quantity" validate:"gte=0"`
	Budget        float64    `json:"budget" validate:"gte=0"`
	Notes         string     `json:"notes"`
	NeededBy      *time.Time `json:"needed_by"`
}

// -------- boxes --------

type BoxTypeRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Capacity int    `json:"capacity" validate:"gt=0"`
}

type BoxInventoryRequest struct {
	BoxTypeID uint   `json:"box_type_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// -------- redirects --------

type RedirectURLRequest struct {
	Slug           string `json:"slug" validate:"required,max=64"`
	DestinationURL string `json:"destination_url" validate:"required,url"`
	Campaign       string `json:"campaign"`
	Active         *bool  `json:"active"`
}

type RedirectStatsResponse struct {
	Slug       string         `json:"slug"`
	ScanCount  int            `json:"scan_count"`
	ByDevice   map[string]int `json:"by_device"`
	ByBrowser  map[string]int `json:"by_browser"`
	ByOS       map[string]int `json:"by_os"`
	ByCampaign map[string]int `json:"by_utm_campaign"`
}

// -------- site customization --------

type SiteCustomizationRequest struct {
	Key   string `json:"key" validate:"required,max=128"`
	Value string `json:"value"`
}

// -------- reviews / addresses --------

type ReviewRequest struct {
	ProductID    uint   `json:"product_id" validate:"required"`
	CustomerName string `json:"customer_name" validate:"max=128"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment"`
}

type AddressRequest struct {
	Label      string `json:"label"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// -------- uploads / auth --------

type Base64UploadRequest struct {
	FileName string `json:"file_name"`
	Data     string `json:"data" validate:"required"` // base64, optionally a data: URL
}

type UploadResponse struct {
	URL string `json:"url"`
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}
