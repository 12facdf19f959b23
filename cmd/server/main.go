package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamenest/cafe-booking-backend/internal/config"
	"github.com/gamenest/cafe-booking-backend/internal/database"
	"github.com/gamenest/cafe-booking-backend/internal/handlers"
	"github.com/gamenest/cafe-booking-backend/internal/middleware"
	"github.com/gamenest/cafe-booking-backend/internal/services"
	"github.com/gamenest/cafe-booking-backend/pkg/jwt"
	"github.com/gamenest/cafe-booking-backend/pkg/mailer"
	"github.com/gamenest/cafe-booking-backend/pkg/uropay"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Repositories
	cafeRepo := database.NewCafeRepository(db.DB)
	pricingRepo := database.NewPricingRepository(db.DB)
	bookingRepo := database.NewBookingRepository(db.DB)
	couponRepo := database.NewCouponRepository(db.DB)
	membershipRepo := database.NewMembershipRepository(db.DB)
	drawerRepo := database.NewCashDrawerRepository(db.DB)
	auditRepo := database.NewAuditLogRepository(db.DB)
	userRepo := database.NewUserRepository(db.DB)

	// Outbound clients
	uroPayClient := uropay.NewClient(uropay.Config{
		BaseURL:    cfg.UroPay.BaseURL,
		APIKey:     cfg.UroPay.APIKey,
		MerchantID: cfg.UroPay.MerchantID,
		Timeout:    cfg.UroPay.Timeout,
	})
	mailClient := mailer.NewClient(mailer.Config{
		BaseURL:   cfg.Email.BaseURL,
		APIKey:    cfg.Email.APIKey,
		FromEmail: cfg.Email.FromEmail,
		Timeout:   cfg.Email.Timeout,
	})

	// Services
	jwtService := jwt.NewService(cfg.JWT.Secret)
	notifier := services.NewNotificationService(mailClient, logger)
	availability := services.NewAvailabilityService(database.NewAvailabilityStore(cafeRepo, bookingRepo), logger)
	bookingService := services.NewBookingService(bookingRepo, pricingRepo, couponRepo, availability, notifier, logger)
	paymentService := services.NewPaymentService(bookingRepo, cafeRepo, uroPayClient, notifier, logger)
	roleService := services.NewRoleService(userRepo, logger)

	// Handlers
	cafeHandler := handlers.NewCafeHandler(cafeRepo, pricingRepo, availability)
	bookingHandler := handlers.NewBookingHandler(bookingService, bookingRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	emailHandler := handlers.NewEmailHandler(notifier)
	authHandler := handlers.NewAuthHandler(userRepo, roleService, jwtService, notifier, cfg.Security.BcryptCost)
	ownerCafeHandler := handlers.NewOwnerCafeHandler(cafeRepo)
	couponHandler := handlers.NewCouponHandler(couponRepo)
	membershipHandler := handlers.NewMembershipHandler(membershipRepo)
	drawerHandler := handlers.NewCashDrawerHandler(drawerRepo)
	adminHandler := handlers.NewAdminHandler(cafeRepo, auditRepo)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(gin.Logger())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		// Public browsing and booking
		v1.GET("/cafes", cafeHandler.ListCafes)
		v1.GET("/cafes/:id", cafeHandler.GetCafe)
		v1.GET("/cafes/:id/ticket-options", cafeHandler.GetTicketOptions)
		v1.GET("/cafes/:id/availability", cafeHandler.GetAvailability)
		v1.POST("/bookings", bookingHandler.CreateBooking)
		v1.GET("/bookings/:id", bookingHandler.GetBooking)
		v1.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)

		// Payment gateway proxy
		v1.POST("/uropay/create-order", paymentHandler.CreateOrder)
		v1.GET("/uropay/status", paymentHandler.GetStatus)

		// Transactional email
		v1.POST("/email", emailHandler.Send)

		// Auth
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/owner/verify", authHandler.VerifyRole)

		// Owner dashboard
		owner := v1.Group("/owner")
		owner.Use(middleware.AuthMiddleware(jwtService), middleware.RequireOwnerPrivileged())
		{
			owner.POST("/change-password", authHandler.ChangePassword)
			owner.GET("/cafes", ownerCafeHandler.GetCafe)
			owner.PUT("/cafes", ownerCafeHandler.UpdateCafe)
			owner.GET("/bookings", bookingHandler.ListOwnerBookings)
			owner.GET("/coupons", couponHandler.ListCoupons)
			owner.POST("/coupons", couponHandler.UpsertCoupon)
			owner.PATCH("/coupons", couponHandler.ToggleCoupon)
			owner.DELETE("/coupons", couponHandler.DeleteCoupon)
			owner.GET("/coupons/usage", couponHandler.ListCouponUsage)
			owner.GET("/membership-plans", membershipHandler.ListPlans)
			owner.POST("/membership-plans", membershipHandler.CreatePlan)
			owner.DELETE("/membership-plans", membershipHandler.DeletePlan)
			owner.GET("/subscriptions", membershipHandler.ListSubscriptions)
			owner.POST("/subscriptions", membershipHandler.CreateSubscription)
			owner.DELETE("/subscriptions", membershipHandler.DeleteSubscription)
			owner.GET("/cash-drawer", drawerHandler.GetDrawer)
			owner.POST("/cash-drawer", drawerHandler.OpenDrawer)
			owner.POST("/cash-drawer/sale", drawerHandler.RecordSale)
			owner.POST("/cash-drawer/collect", drawerHandler.Collect)
			owner.POST("/cash-drawer/close", drawerHandler.Close)
		}

		// Admin surface
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
		{
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			admin.POST("/cafes/:id/activate", adminHandler.ActivateCafe)
			admin.POST("/cafes/:id/deactivate", adminHandler.DeactivateCafe)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
}
