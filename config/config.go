package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"himpunan-cms/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port          string
	JWTSecret     []byte
	JWTExpiration time.Duration
	CryptoSecret  string
	// HoursToVerify is the verification window shared by email
	// verification and forgot-password tokens.
	HoursToVerify int
}

func Load() *Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}

	cryptoSecret := os.Getenv("CRYPTO_SECRET")
	if cryptoSecret == "" {
		cryptoSecret = "your-crypto-secret-change-this-in-production"
	}

	hours := 24
	if v := os.Getenv("HOURS_TO_VERIFY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			hours = parsed
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:          port,
		JWTSecret:     []byte(secret),
		JWTExpiration: 24 * time.Hour,
		CryptoSecret:  cryptoSecret,
		HoursToVerify: hours,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the Postgres connection and migrates the schema.
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the services map to conflicts.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "himpunan_cms"),
		getenv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.VerificationEmailToken{},
		&models.ForgotPassword{},
		&models.Category{},
		&models.Article{},
	); err != nil {
		zap.L().Fatal("failed to migrate tables", zap.Error(err))
	}

	return db
}
