package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	if err := postgres.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	publisher := createPublisher(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher)

	jobManager := app.CreateJobManager(configs.PaymentTTL, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:    goDotEnvVariable("HTTP_PORT"),
		DBHost:      goDotEnvVariable("DB_HOST"),
		DBPort:      goDotEnvVariable("DB_PORT"),
		DBUser:      goDotEnvVariable("DB_USER"),
		DBPassword:  goDotEnvVariable("DB_PASSWORD"),
		DBName:      goDotEnvVariable("DB_NAME"),
		DBSslMode:   goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		PaymentTTL:  getPaymentTTL(),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func getPaymentTTL() time.Duration {
	raw := os.Getenv("PAYMENT_TTL")
	if raw == "" {
		return 30 * time.Minute
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid PAYMENT_TTL %q: %v", raw, err)
	}
	return ttl
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func createPublisher(configs cmd.Config, logger *slog.Logger) ports.EventPublisher {
	if configs.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL not set, status events disabled")
		return ports.NopEventPublisher{}
	}

	publisher, err := rabbitmq.NewStatusPublisher(configs.RabbitMQURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	return publisher
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateUpdateDeliveryCommandHandler(),
		app.CreateDeleteDeliveryCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateClaimDeliveryCommandHandler(),
		app.CreateReleaseDeliveryCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateCancelDeliveryCommandHandler(),
		app.CreateGetDeliveryQueryHandler(),
		app.CreateGetAllDeliveriesQueryHandler(),
		app.CreateGetDeliveriesByUserQueryHandler(),
		app.CreateGetEligibleDeliveriesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
