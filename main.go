// File: shearbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shearbook/config"
	"shearbook/cron"
	"shearbook/database"
	bookingRepoPkg "shearbook/database/repository/booking"
	holdRepoPkg "shearbook/database/repository/hold"
	notificationRepoPkg "shearbook/database/repository/notification"
	shopRepoPkg "shearbook/database/repository/shop"
	"shearbook/handlers"
	"shearbook/middleware"
	"shearbook/realtime"
	"shearbook/routes"
	"shearbook/services/invoice"
	"shearbook/services/notification"
	"shearbook/services/reservation"
	"shearbook/services/shop"
	"shearbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSlotCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	holdRepo := holdRepoPkg.NewMongoHoldRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	for _, ensure := range []func() error{
		holdRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		shopRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Services.
	notificationService := &notification.DefaultNotificationService{
		Repo: notificationRepo,
	}
	invoiceService := &invoice.DefaultInvoiceService{
		Repo: bookingRepo,
	}
	feedHub := realtime.NewHub(logger)

	reservationService := &reservation.DefaultReservationService{
		Shops:       shopRepo,
		Holds:       holdRepo,
		Bookings:    bookingRepo,
		Notifier:    notificationService,
		Feed:        feedHub,
		Compensator: cron.NewEnqueuer(),
		Invoices:    invoiceService,
		Cache:       utils.GetSlotCacheClient(),
		PastBuffer:  config.PastBuffer(),
	}

	shopService := &shop.DefaultShopService{
		Repo:            shopRepo,
		Bookings:        bookingRepo,
		AuthCache:       utils.GetAuthCacheClient(),
		TokenExpiry:     time.Duration(config.AppConfig.TokenExpiryHours) * time.Hour,
		AuthTokenExpiry: time.Duration(config.AppConfig.AuthTokenExpiryHrs) * time.Hour,
	}

	// Background compensation worker and orphan sweep.
	cron.InitHoldWorker(reservationService, holdRepo)

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(reservationService, invoiceService, logger)
	shopHandler := handlers.NewShopHandler(shopService, notificationRepo, logger)
	feedHandler := handlers.NewFeedHandler(feedHub, reservationService, logger)

	routes.RegisterRoutes(router, bookingHandler, shopHandler, feedHandler)

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
