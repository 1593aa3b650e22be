package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chocolate-storefront/internal/client"
	"chocolate-storefront/internal/config"
	"chocolate-storefront/internal/logger"
	"chocolate-storefront/internal/repository"
	"chocolate-storefront/internal/server"
	"chocolate-storefront/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db := client.InitMysqlClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)

	productRepo := repository.NewProductRepository(db)
	variationRepo := repository.NewVariationRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	postPurchaseRepo := repository.NewPostPurchaseDiscountRepository(db)
	customOrderRepo := repository.NewCustomOrderRepository(db)
	boxRepo := repository.NewBoxRepository(db)
	redirectRepo := repository.NewRedirectRepository(db)
	siteRepo := repository.NewSiteCustomizationRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	pricing := service.NewPricingService(productRepo, variationRepo, log)
	discounts := service.NewDiscountService(discountRepo, postPurchaseRepo, stripeClient, log)

	svc := &server.Services{
		Catalog:      service.NewCatalogService(db, productRepo, variationRepo, categoryRepo, reviewRepo, cartRepo, pricing, log),
		Pricing:      pricing,
		Cart:         service.NewCartService(db, cartRepo, productRepo, pricing),
		Checkout:     service.NewCheckoutService(db, stripeClient, cartRepo, productRepo, orderRepo, webhookEventRepo, pricing, discounts, log),
		Discounts:    discounts,
		Orders:       service.NewOrderService(db, orderRepo, pricing, log),
		CustomOrders: service.NewCustomOrderService(customOrderRepo),
		Boxes:        service.NewBoxService(boxRepo),
		Redirects:    service.NewRedirectService(redirectRepo, log),
		Site:         service.NewSiteService(siteRepo),
		Reviews:      service.NewReviewService(db, reviewRepo, productRepo),
		Addresses:    service.NewAddressService(addressRepo),
		Uploads:      service.NewUploadService(cfg.Uploads),
		Auth:         service.NewAuthService(cfg.Admin),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(cfg, svc, log)

	log.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
