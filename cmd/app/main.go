package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alanbulan/EcoLoop/cmd"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/accountrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/auditrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/collectorrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/configrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/materialrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/notificationrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/orderrepo"
	"github.com/alanbulan/EcoLoop/internal/adapters/out/postgres/withdrawalrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  durationVariable("TOKEN_TTL", 24*time.Hour),

		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		OrderExpiryWindow:      durationVariable("ORDER_EXPIRY_WINDOW", 24*time.Hour),
		WithdrawalExpiryWindow: durationVariable("WITHDRAWAL_EXPIRY_WINDOW", 72*time.Hour),
	}
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return parsed
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&accountrepo.AccountDTO{},
		&collectorrepo.CollectorDTO{},
		&materialrepo.MaterialDTO{},
		&materialrepo.PricingRuleDTO{},
		&orderrepo.OrderDTO{},
		&withdrawalrepo.WithdrawalDTO{},
		&auditrepo.AuditLogDTO{},
		&notificationrepo.NotificationDTO{},
		&configrepo.SystemConfigDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
