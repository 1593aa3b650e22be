package model

import "time"

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:128;index;not null"`
	Description string `gorm:"type:text"`
	// BasePrice is an integer of historically ambiguous unit: most rows are
	// cents, some early rows are whole dollars. pricing.NormalizeAmount owns
	// the disambiguation.
	BasePrice  int    `gorm:"not null"`
	Currency   string `gorm:"size:8;not null;default:usd"`
	CategoryID *uint  `gorm:"index"`

	// Option lists serialized as JSON arrays of strings, e.g. ["small","medium","large"].
	SizeOptions  string `gorm:"type:text"`
	TypeOptions  string `gorm:"type:text"`
	ShapeOptions string `gorm:"type:text"`

	SaleType      string `gorm:"size:16"` // percentage, fixed
	SaleValue     float64
	SaleActive    bool
	SaleStartDate *time.Time
	SaleEndDate   *time.Time

	AverageRating float64
	ReviewCount   int

	DisplayOrder int  `gorm:"index"`
	Visible      bool `gorm:"not null;default:true"`

	Images     []ProductImage          `gorm:"foreignKey:ProductID"`
	Variations []ProductPriceVariation `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	URL       string `gorm:"size:512;not null"`
	Alt       string `gorm:"size:256"`
	IsPrimary bool
	CreatedAt time.Time
}

// ProductPriceVariation adjusts a product's price for a size/type/shape
// combination. Empty discriminators are wildcards; specificity is the count
// of non-empty discriminators (1, 2 or 3). When IsAbsolute is set the row
// replaces the running price instead of adding to it.
type ProductPriceVariation struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Size      string `gorm:"size:32"`
	Type      string `gorm:"size:32"`
	Shape     string `gorm:"size:32"`
	// PriceModifier is stored in cents.
	PriceModifier int `gorm:"not null"`
	IsAbsolute    bool
	DisplayOrder  int `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Category struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:128;uniqueIndex;not null"`
	Description  string `gorm:"type:text"`
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Review struct {
	ID           uint   `gorm:"primaryKey"`
	ProductID    uint   `gorm:"index;not null"`
	CustomerName string `gorm:"size:128"`
	Rating       int    `gorm:"not null"`
	Comment      string `gorm:"type:text"`
	CreatedAt    time.Time
}
