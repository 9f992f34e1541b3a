// File: pristine/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pristine/config"
	"pristine/cron"
	"pristine/database"
	bookingRepoPkg "pristine/database/repository/booking"
	cleanerRepoPkg "pristine/database/repository/cleaner"
	notificationRepoPkg "pristine/database/repository/notification"
	paymentRepoPkg "pristine/database/repository/payment"
	serviceRepoPkg "pristine/database/repository/service"
	userRepoPkg "pristine/database/repository/user"
	"pristine/handlers"
	"pristine/routes"
	"pristine/services/admin"
	"pristine/services/booking"
	"pristine/services/catalog"
	"pristine/services/notification"
	"pristine/services/user"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	cleanerRepo := cleanerRepoPkg.NewMongoCleanerRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:   notificationRepo,
		Logger: logger,
	}
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:   serviceRepo,
		Cache:  utils.GetCacheClient(),
		Logger: logger,
	}

	paymentHandler := booking.NewPaymentHandler(
		logger,
		paymentRepo,
		bookingRepo,
		&booking.StripeCardGateway{},
		booking.NewPayPalGateway(
			config.AppConfig.PayPalAPIBase,
			config.AppConfig.PayPalClientID,
			config.AppConfig.PayPalClientSecret,
			config.AppConfig.PublicBaseURL,
			nil,
		),
	)

	wizardService := &booking.DefaultWizardService{
		Store:       booking.NewWizardStore(utils.GetWizardCacheClient(), 30*time.Minute),
		ServiceRepo: serviceRepo,
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		Payments:    paymentHandler,
		Notifier:    notificationService,
		Logger:      logger,
	}
	crudService := &booking.DefaultCrudService{
		Repo:   bookingRepo,
		Logger: logger,
	}

	dashboardView := &admin.DashboardView{Cache: utils.GetCacheClient()}
	adminBookingService := &admin.DefaultAdminBookingService{
		BookingRepo: bookingRepo,
		CleanerRepo: cleanerRepo,
		View:        dashboardView,
		Notifier:    notificationService,
		Logger:      logger,
	}
	cleanerService := &admin.DefaultCleanerService{
		Repo:   cleanerRepo,
		Logger: logger,
	}

	// Register routes with the assembled handlers.
	routes.RegisterRoutes(router, &routes.Handlers{
		Auth:          handlers.NewAuthHandler(userService, logger),
		Catalog:       handlers.NewCatalogHandler(catalogService, logger),
		Wizard:        handlers.NewWizardHandler(wizardService, logger),
		Booking:       handlers.NewBookingHandler(crudService, logger),
		Payment:       handlers.NewPaymentHandler(wizardService, paymentHandler, logger),
		Admin:         handlers.NewAdminHandler(adminBookingService, cleanerService, logger),
		Notifications: handlers.NewNotificationHandler(notificationService, logger),
	})

	// Background workers.
	cron.InitReminderWorker(notificationService)
	cron.InitReminderScheduler(bookingRepo)
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetWizardCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
