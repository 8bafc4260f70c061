package main

import (
	"net/http"
	"time"

	"himpunan-cms/config"
	"himpunan-cms/crypto"
	"himpunan-cms/handlers"
	"himpunan-cms/repositories"
	"himpunan-cms/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		zap.L().Info("no .env file found")
	}

	cfg := config.Load()

	// Initialize database
	db := config.InitDB()

	// Crypto service for tokens and password hashing
	cryptoSvc := crypto.NewService(cfg.CryptoSecret)

	verifyWindow := time.Duration(cfg.HoursToVerify) * time.Hour

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewVerificationTokenRepository(db)
	forgotRepo := repositories.NewForgotPasswordRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cryptoSvc, cfg)
	userService := services.NewUserService(userRepo, tokenRepo, cryptoSvc, verifyWindow)
	recoveryService := services.NewRecoveryService(userRepo, forgotRepo, cryptoSvc, verifyWindow)
	articleService := services.NewArticleService(articleRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService, recoveryService)
	userHandler := handlers.NewUserHandler(userService)
	articleHandler := handlers.NewArticleHandler(articleService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	router := handlers.NewRouter(cfg, authHandler, userHandler, articleHandler, categoryHandler)

	zap.L().Info("server starting", zap.String("port", cfg.Port))

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
