package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/rotem123456/recipe-app-api/internal/directory"
	"github.com/rotem123456/recipe-app-api/internal/handler"
	"github.com/rotem123456/recipe-app-api/internal/middleware"
	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
	"github.com/rotem123456/recipe-app-api/pkg/config"
	"github.com/rotem123456/recipe-app-api/pkg/database"
	"github.com/rotem123456/recipe-app-api/pkg/jwtutil"
	"github.com/rotem123456/recipe-app-api/pkg/logger"
	"github.com/rotem123456/recipe-app-api/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("recipe-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting recipe service...", cfg.LogFields()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(db,
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	dir := directory.NewService(userRepo)
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)

	authHandler := handler.NewAuthHandler(dir, userRepo, jwtUtil)
	tagHandler := handler.NewTagHandler(tagRepo)
	ingredientHandler := handler.NewIngredientHandler(ingredientRepo)
	recipeHandler := handler.NewRecipeHandler(recipeRepo, tagRepo, ingredientRepo)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtUtil))

	api.GET("/users/me", authHandler.Me)

	tags := api.Group("/tags")
	tags.GET("", tagHandler.List)
	tags.POST("", tagHandler.Create)
	tags.GET("/:id", tagHandler.Get)
	tags.PATCH("/:id", tagHandler.Patch)
	tags.DELETE("/:id", tagHandler.Delete)

	ingredients := api.Group("/ingredients")
	ingredients.GET("", ingredientHandler.List)
	ingredients.POST("", ingredientHandler.Create)
	ingredients.GET("/:id", ingredientHandler.Get)
	ingredients.PATCH("/:id", ingredientHandler.Patch)
	ingredients.DELETE("/:id", ingredientHandler.Delete)

	recipes := api.Group("/recipes")
	recipes.GET("", recipeHandler.List)
	recipes.POST("", recipeHandler.Create)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PATCH("/:id", recipeHandler.Patch)
	recipes.DELETE("/:id", recipeHandler.Delete)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
