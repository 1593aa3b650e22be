package server

import (
	"log/slog"

	"chocolate-storefront/internal/config"
	"chocolate-storefront/internal/handler"
	custommw "chocolate-storefront/internal/middleware"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Services struct {
	Catalog      service.CatalogService
	Pricing      service.PricingService
	Cart         service.CartService
	Checkout     service.CheckoutService
	Discounts    service.DiscountService
	Orders       service.OrderService
	CustomOrders service.CustomOrderService
	Boxes        service.BoxService
	Redirects    service.RedirectService
	Site         service.SiteService
	Reviews      service.ReviewService
	Addresses    service.AddressService
	Uploads      service.UploadService
	Auth         service.AuthService
}

type Server struct {
	echo *echo.Echo
	cfg  *config.Config
}

func NewServer(cfg *config.Config, svc *Services, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"error", v.Error,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(custommw.UserContext())

	e.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	s := &Server{
		echo: e,
		cfg:  cfg,
	}

	s.setupRoutes(svc, logger)
	return s
}

func (s *Server) setupRoutes(svc *Services, logger *slog.Logger) {
	productHandler := handler.NewProductHandler(svc.Catalog, svc.Pricing)
	cartHandler := handler.NewCartHandler(svc.Cart)
	checkoutHandler := handler.NewCheckoutHandler(svc.Checkout, svc.Discounts, logger)
	discountHandler := handler.NewDiscountHandler(svc.Discounts)
	orderHandler := handler.NewOrderHandler(svc.Orders)
	customOrderHandler := handler.NewCustomOrderHandler(svc.CustomOrders)
	boxHandler := handler.NewBoxHandler(svc.Boxes)
	redirectHandler := handler.NewRedirectHandler(svc.Redirects)
	siteHandler := handler.NewSiteHandler(svc.Site)
	reviewHandler := handler.NewReviewHandler(svc.Reviews)
	addressHandler := handler.NewAddressHandler(svc.Addresses)
	uploadHandler := handler.NewUploadHandler(svc.Uploads)
	authHandler := handler.NewAuthHandler(svc.Auth)

	// QR campaign redirects live outside /api.
	s.echo.GET("/r/:slug", redirectHandler.Hit)
	s.echo.GET("/go/:slug", redirectHandler.Hit)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/products/:id/reviews", reviewHandler.ListByProduct)
	api.GET("/price", productHandler.Price)
	api.POST("/reviews", reviewHandler.Create)
	api.GET("/categories", productHandler.ListCategories)

	api.GET("/cart", cartHandler.Get)
	api.POST("/cart", cartHandler.Add)
	api.PATCH("/cart/:id", cartHandler.UpdateQuantity)
	api.DELETE("/cart/:id", cartHandler.Remove)
	api.DELETE("/cart", cartHandler.Clear)

	api.POST("/checkout", checkoutHandler.CreateSession)
	api.POST("/checkout/discount", checkoutHandler.ApplyDiscount)
	api.GET("/discounts/:code/validate", discountHandler.Validate)
	api.POST("/discounts/post-purchase/:code/redeem", discountHandler.RedeemPostPurchase)

	api.POST("/custom-orders", customOrderHandler.Create)

	api.GET("/addresses", addressHandler.List)
	api.POST("/addresses", addressHandler.Create)
	api.PUT("/addresses/:id", addressHandler.Update)
	api.DELETE("/addresses/:id", addressHandler.Delete)
	api.POST("/addresses/:id/default", addressHandler.SetDefault)

	api.GET("/site", siteHandler.List)
	api.GET("/site/:key", siteHandler.Get)

	// -------- payment processor webhook --------
	api.POST("/webhook/stripe", checkoutHandler.Webhook)

	// -------- admin --------
	api.POST("/admin/login", authHandler.Login)

	admin := api.Group("/admin", custommw.AdminAuth(svc.Auth, s.cfg.Environment))

	admin.GET("/products", productHandler.AdminList)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.GET("/products/:id/variations", productHandler.ListVariations)
	admin.POST("/products/:id/variations", productHandler.AddVariation)
	admin.PUT("/variations/:variationID", productHandler.UpdateVariation)
	admin.DELETE("/variations/:variationID", productHandler.DeleteVariation)

	admin.POST("/categories", productHandler.CreateCategory)
	admin.PUT("/categories/:id", productHandler.UpdateCategory)
	admin.DELETE("/categories/:id", productHandler.DeleteCategory)

	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.GET("/orders/:id/items", orderHandler.Items)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/orders/:id/fix-items", orderHandler.FixUpItems)

	admin.GET("/discounts", discountHandler.List)
	admin.POST("/discounts", discountHandler.Create)
	admin.PUT("/discounts/:id", discountHandler.Update)
	admin.DELETE("/discounts/:id", discountHandler.Delete)
	admin.PATCH("/discounts/:id/active", discountHandler.SetActive)
	admin.GET("/post-purchase-discounts", discountHandler.ListPostPurchase)
	admin.POST("/post-purchase-discounts", discountHandler.CreatePostPurchase)
	admin.DELETE("/post-purchase-discounts/:id", discountHandler.DeletePostPurchase)

	admin.GET("/custom-orders", customOrderHandler.List)
	admin.GET("/custom-orders/:id", customOrderHandler.Get)
	admin.PATCH("/custom-orders/:id/status", customOrderHandler.UpdateStatus)
	admin.DELETE("/custom-orders/:id", customOrderHandler.Delete)

	admin.GET("/boxes", boxHandler.ListStock)
	admin.POST("/boxes", boxHandler.CreateType)
	admin.PUT("/boxes/:id", boxHandler.UpdateType)
	admin.DELETE("/boxes/:id", boxHandler.DeleteType)
	admin.POST("/boxes/inventory", boxHandler.Adjust)
	admin.GET("/boxes/:id/inventory", boxHandler.History)

	admin.GET("/redirects", redirectHandler.List)
	admin.POST("/redirects", redirectHandler.Create)
	admin.PUT("/redirects/:id", redirectHandler.Update)
	admin.DELETE("/redirects/:id", redirectHandler.Delete)
	admin.GET("/redirects/:id/stats", redirectHandler.Stats)

	admin.POST("/site", siteHandler.Set)
	admin.DELETE("/site/:key", siteHandler.Delete)

	admin.POST("/uploads", uploadHandler.Multipart)
	admin.POST("/uploads/base64", uploadHandler.Base64)

	admin.DELETE("/reviews/:id", reviewHandler.Delete)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
