package client

import (
	"log"
	"time"

	"chocolate-storefront/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.ProductImage{},
		&model.ProductPriceVariation{},
		&model.Category{},
		&model.Review{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Discount{},
		&model.PostPurchaseDiscount{},
		&model.CustomOrder{},
		&model.BoxType{},
		&model.BoxInventory{},
		&model.RedirectURL{},
		&model.RedirectScan{},
		&model.SiteCustomization{},
		&model.Address{},
		&model.WebhookEvent{},
	)
}
