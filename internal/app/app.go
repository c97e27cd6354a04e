package app

import (
	"caromotors-backend/internal/auth"
	"caromotors-backend/internal/bookings"
	"caromotors-backend/internal/cars"
	"caromotors-backend/internal/catalog"
	"caromotors-backend/internal/config"
	"caromotors-backend/internal/database"
	"caromotors-backend/internal/health"
	"caromotors-backend/internal/middleware"
	"caromotors-backend/internal/payments"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Redis is optional; catalog and health stats degrade without it.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		if errDB = database.AutoMigrate(db); errDB != nil {
			return nil, nil, nil, errDB
		}
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to Caromotors API"})
	})

	var dbPinger health.DBPinger
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			dbPinger = sqlDB
		}
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             dbPinger,
		FrontendURL:    cfg.FrontendURL,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", healthHandlers.JSON)
	if rdb != nil {
		app.Get("/health/reset", healthHandlers.Reset)
		app.Get("/health/errors", healthHandlers.Errors)
	}

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	requireAdmin := middleware.RequireAdmin()

	authHandlers := &auth.Handlers{
		Service:   &auth.Service{DB: db},
		JWTSecret: cfg.JWTSecret,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", requireAuth, authHandlers.Me)
	authGroup.Get("/users", requireAuth, requireAdmin, authHandlers.ListUsers)
	authGroup.Put("/wishlist/:car_id", requireAuth, authHandlers.ToggleWishlist)

	carHandlers := &cars.Handlers{Service: &cars.Service{DB: db}}
	carGroup := app.Group("/api/v1/cars")
	// Admin routes before "/:id" so "admin" is not parsed as a car id.
	carGroup.Get("/admin/all", requireAuth, requireAdmin, carHandlers.GetAllCarsAdmin)
	carGroup.Get("/admin/:id", requireAuth, requireAdmin, carHandlers.GetCarByIDAdmin)
	carGroup.Get("/", carHandlers.GetAllCars)
	carGroup.Get("/:id", carHandlers.GetCarByID)
	carGroup.Post("/", requireAuth, requireAdmin, carHandlers.CreateCar)
	carGroup.Put("/:id", requireAuth, requireAdmin, carHandlers.UpdateCar)
	carGroup.Delete("/:id", requireAuth, requireAdmin, carHandlers.DeleteCar)

	bookingHandlers := &bookings.Handlers{Service: &bookings.Service{DB: db}}
	bookingGroup := app.Group("/api/v1/bookings")
	bookingGroup.Post("/", requireAuth, bookingHandlers.CreateBooking)
	bookingGroup.Get("/my", requireAuth, bookingHandlers.MyBookings)
	bookingGroup.Get("/", requireAuth, requireAdmin, bookingHandlers.GetAllBookings)
	bookingGroup.Put("/:id", requireAuth, requireAdmin, bookingHandlers.UpdateBookingStatus)

	var orderCreator payments.OrderCreator
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		orderCreator = &payments.RazorpayCreator{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
		}
	}
	paymentHandlers := &payments.Handlers{Creator: orderCreator}
	app.Post("/api/v1/payment/order", requireAuth, paymentHandlers.CreateOrder)

	if rdb != nil {
		catalogHandlers := catalog.NewHandlers(&catalog.Store{Rdb: rdb})
		catalogGroup := app.Group("/api/v1/catalog")
		catalogGroup.Get("/categories", catalogHandlers.ListCategories)
		catalogGroup.Post("/categories", requireAuth, requireAdmin, catalogHandlers.CreateCategory)
		catalogGroup.Delete("/categories/:id", requireAuth, requireAdmin, catalogHandlers.DeleteCategory)
		catalogGroup.Get("/dealers", requireAuth, requireAdmin, catalogHandlers.ListDealers)
		catalogGroup.Post("/dealers", requireAuth, requireAdmin, catalogHandlers.CreateDealer)
		catalogGroup.Put("/dealers/:id", requireAuth, requireAdmin, catalogHandlers.UpdateDealer)
		catalogGroup.Delete("/dealers/:id", requireAuth, requireAdmin, catalogHandlers.DeleteDealer)
	}

	return app, db, rdb, nil
}
