package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garagehub/config"
	"garagehub/cron"
	"garagehub/database"
	appointmentRepoPkg "garagehub/database/repository/appointment"
	garageRepoPkg "garagehub/database/repository/garage"
	orderRepoPkg "garagehub/database/repository/order"
	productRepoPkg "garagehub/database/repository/product"
	scheduleRepoPkg "garagehub/database/repository/schedule"
	userRepoPkg "garagehub/database/repository/user"
	"garagehub/handlers"
	"garagehub/middleware"
	"garagehub/routes"
	"garagehub/services/appointment"
	"garagehub/services/garage"
	"garagehub/services/notification"
	"garagehub/services/order"
	"garagehub/services/product"
	"garagehub/services/schedule"
	"garagehub/services/user"
	"garagehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	garageRepo := garageRepoPkg.NewMongoGarageRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	productRepo := productRepoPkg.NewMongoProductRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()

	// background mail queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	defer asynqClient.Close()

	notifier := &notification.AsynqNotifier{
		Client:  asynqClient,
		Users:   userRepo,
		Garages: garageRepo,
		Slots:   scheduleRepo,
	}
	notificationService := &notification.DefaultNotificationService{
		Mailer: notification.LogMailer{},
	}
	cron.InitMailWorker(notificationService)

	// services.
	availabilityCache := schedule.NewRedisAvailabilityCache(utils.GetCacheClient(), 30*time.Second)
	userService := &user.DefaultUserService{Repo: userRepo}
	garageService := &garage.DefaultGarageService{Repo: garageRepo}
	scheduleService := &schedule.DefaultScheduleService{
		Repo:         scheduleRepo,
		Appointments: appointmentRepo,
		Garages:      garageRepo,
		Cache:        availabilityCache,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:         appointmentRepo,
		Slots:        scheduleRepo,
		Notifier:     notifier,
		Availability: availabilityCache,
	}
	productService := &product.DefaultProductService{Repo: productRepo}
	orderService := &order.DefaultOrderService{
		Repo:     orderRepo,
		Products: productRepo,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:     userRepo,
		Users:        handlers.NewUserHandler(userService),
		Garages:      handlers.NewGarageHandler(garageService),
		Schedules:    handlers.NewScheduleHandler(scheduleService, garageService),
		Products:     handlers.NewProductHandler(productService, garageService),
		Orders:       handlers.NewOrderHandler(orderService),
		Appointments: handlers.NewAppointmentHandler(appointmentService),
	}
	routes.RegisterRoutes(router, handlerBundle)

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
	database.CloseDB()

	logger.Sugar().Info("main: server stopped gracefully")
}
