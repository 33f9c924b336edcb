package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worknook/config"
	"worknook/database"
	bookingRepoPkg "worknook/database/repository/booking"
	serviceRepoPkg "worknook/database/repository/service"
	userRepoPkg "worknook/database/repository/user"
	workerRepoPkg "worknook/database/repository/worker"
	"worknook/handlers"
	"worknook/routes"
	"worknook/services/booking"
	"worknook/services/identity"
	"worknook/services/listing"
	"worknook/services/storage"
	"worknook/services/worker"
	"worknook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	storageService, err := storage.NewStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	workerRepo := workerRepoPkg.NewMongoWorkerRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	workerService := &worker.DefaultWorkerService{
		Repo:     workerRepo,
		UserRepo: userRepo,
	}
	identityService := &identity.DefaultIdentityService{
		Repo:       userRepo,
		WorkerRepo: workerRepo,
		Workers:    workerService,
		Storage:    storageService,
	}
	listingService := &listing.DefaultListingService{
		Repo:       serviceRepo,
		WorkerRepo: workerRepo,
		Workers:    workerService,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:        bookingRepo,
		ServiceRepo: serviceRepo,
		WorkerRepo:  workerRepo,
	}

	// handlers.
	authHandler := handlers.NewAuthHandler(identityService)
	userHandler := handlers.NewUserHandler(identityService, workerService)
	serviceHandler := handlers.NewServiceHandler(listingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	handlerBundle := handlers.NewHandlerBundle(authHandler, userHandler, serviceHandler, bookingHandler)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

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
