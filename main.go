package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/activity"
	"github.com/Nobirs/FoodTracker/internal/audit"
	"github.com/Nobirs/FoodTracker/internal/auth"
	"github.com/Nobirs/FoodTracker/internal/food"
	"github.com/Nobirs/FoodTracker/internal/meal"
	"github.com/Nobirs/FoodTracker/internal/user"
	"github.com/Nobirs/FoodTracker/internal/utils"
	"github.com/Nobirs/FoodTracker/internal/water"
)

func main() {
	// load config
	cfg, err := utils.LoadConfig(".env")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// init database
	db, err := utils.InitDatabase(cfg.Database.DSN())
	if err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}
	if err := db.AutoMigrate(
		&user.User{},
		&audit.AuditLog{},
		&water.WaterIntake{},
		&activity.Activity{},
		&food.FoodItem{},
		&meal.Meal{},
		&meal.MealItem{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// init revocation store
	redisClient, err := utils.InitRedis(cfg.Redis)
	if err != nil {
		panic("Failed to connect to redis: " + err.Error())
	}

	// init object storage
	objectStore, err := utils.NewObjectStore(context.Background(), cfg.ObjectStore)
	if err != nil {
		panic("Failed to init object storage: " + err.Error())
	}

	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// init token codec
	codec, err := utils.NewTokenCodec(cfg.Token)
	if err != nil {
		panic("Failed to init token codec: " + err.Error())
	}

	// init Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	//
	// WIRE UP SERVICES
	//
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, logger)

	revocationStore := auth.NewRedisRevocationStore(redisClient)
	sessionService := auth.NewService(userService, revocationStore, codec, cfg.Token.RefreshExpiry, logger)

	auditRepo := audit.NewRepository(db)
	recorder := audit.NewRecorder(auditRepo, logger)

	api := router.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/")
	authGroup.Use(auth.Middleware(userService, codec, logger))

	user.NewHandler(api, authGroup, userService, logger)
	auth.NewHandler(api, authGroup, sessionService, logger)

	waterService := water.NewService(water.NewRepository(db), recorder, logger)
	water.NewHandler(authGroup, waterService, logger)

	activityService := activity.NewService(activity.NewRepository(db), recorder, logger)
	activity.NewHandler(authGroup, activityService, logger)

	foodService := food.NewService(food.NewRepository(db), recorder, logger)
	food.NewHandler(authGroup, foodService, logger)

	mealService := meal.NewService(meal.NewRepository(db), objectStore, recorder, logger)
	meal.NewHandler(authGroup, mealService, logger)

	audit.NewHandler(authGroup, auditRepo, logger)

	//
	// START SERVER
	//
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped gracefully")
	}
}
