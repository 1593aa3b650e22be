package model

import "time"

type CustomOrder struct {
	ID            uint   `gorm:"primaryKey"`
	CustomerName  string `gorm:"size:128;not null"`
	CustomerEmail string `gorm:"size:256;not null"`
	CustomerPhone string `gorm:"size:32"`
	Occasion      string `gorm:"size:128"`
	Flavors       string `gorm:"type:text"` // JSON array of strings
	Quantity      int
	Budget        float64
	Notes         string `gorm:"type:text"`
	NeededBy      *time.Time
	Status        string `gorm:"size:32;index;not null"` // pending, quoted, accepted, in_progress, completed, cancelled
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type BoxType struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;uniqueIndex;not null"`
	Capacity  int    `gorm:"not null"` // pieces per box
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BoxInventory struct {
	ID        uint `gorm:"primaryKey"`
	BoxTypeID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	// Delta log entries keep the running quantity auditable.
	Note      string `gorm:"size:256"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RedirectURL struct {
	ID             uint   `gorm:"primaryKey"`
	Slug           string `gorm:"size:64;uniqueIndex;not null"`
	DestinationURL string `gorm:"size:1024;not null"`
	Campaign       string `gorm:"size:128"`
	Active         bool   `gorm:"not null;default:true"`
	ScanCount      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type RedirectScan struct {
	ID            string `gorm:"primaryKey;size:64"` // uuid
	RedirectURLID uint   `gorm:"index;not null"`
	Browser       string `gorm:"size:64"`
	OS            string `gorm:"size:64"`
	Device        string `gorm:"size:32"` // mobile, tablet, desktop, bot
	UserAgent     string `gorm:"size:512"`
	IP            string `gorm:"size:64"`
	Referrer      string `gorm:"size:512"`
	UTMSource     string `gorm:"size:128"`
	UTMMedium     string `gorm:"size:128"`
	UTMCampaign   string `gorm:"size:128"`
	CreatedAt     time.Time
}

type SiteCustomization struct {
	Key       string `gorm:"primaryKey;size:128;not null"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
	CreatedAt time.Time
}

type Address struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"size:64;index;not null"`
	Label      string `gorm:"size:64"`
	Line1      string `gorm:"size:256;not null"`
	Line2      string `gorm:"size:256"`
	City       string `gorm:"size:128"`
	State      string `gorm:"size:64"`
	PostalCode string `gorm:"size:16"`
	Country    string `gorm:"size:64"`
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
