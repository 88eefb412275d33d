package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"karam/internal/config"
	"karam/internal/database"
	"karam/internal/middleware"
	"karam/internal/modules/auth"
	"karam/internal/modules/booking"
	"karam/internal/modules/cart"
	"karam/internal/modules/catalog"
	"karam/internal/modules/notify"
	"karam/internal/modules/payment"
	jwtsvc "karam/internal/pkg/jwt"
	"karam/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	productRepo := repository.NewProductRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cartRepo := repository.NewCartRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	paymentRepo := repository.NewMoyasarPaymentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notify.NewHub()
	defer hub.Close()
	notifyService := notify.NewService(notifRepo, hub)
	notifyHandler := notify.NewHandler(notifyService, hub, j)

	cartService := cart.NewService(cartRepo, discountRepo)
	cartHandler := cart.NewHandler(cartService, cfg.LoginURL)

	authService := auth.NewService(userRepo, j, cartService)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(familyRepo, productRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(booking.NewSessionManager(), familyRepo, bookingRepo, cartService, notifyService)
	bookingHandler := booking.NewHandler(bookingService)

	gateway := payment.NewMoyasarClient(cfg.MoyasarBaseURL, cfg.MoyasarSecretKey)
	paymentService := payment.NewService(paymentRepo, bookingRepo, cartService, discountRepo, gateway, notifyService, payment.Config{
		PublishableKey: cfg.MoyasarPublishableKey,
		SecretKey:      cfg.MoyasarSecretKey,
		CallbackURL:    cfg.PaymentCallbackURL,
		Currency:       cfg.Currency,
	})
	paymentHandler := payment.NewHandler(paymentService)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSOrigins))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		// Carts and booking sessions work for anonymous visitors too, so
		// these routes take auth opportunistically.
		optional := v1.Group("/")
		optional.Use(middleware.AuthOptional(j))
		{
			required := middleware.Auth(j)
			cartHandler.RegisterRoutes(optional, required)
			bookingHandler.RegisterRoutes(optional, required)
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			notifyHandler.RegisterProtectedRoutes(protected)
		}
	}
	notifyHandler.RegisterWSRoute(r.Group("/"))

	log.Printf("karam api listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
