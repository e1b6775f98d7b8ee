package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpserver "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/invoicerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	defer redisClient.Close()

	amqpConn, err := amqp.Dial(configs.AmqpURL)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer amqpConn.Close()

	amqpChannel, err := amqpConn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer amqpChannel.Close()

	root, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, amqpChannel, logger)
	if err != nil {
		log.Fatalf("composition root: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer jobManager.StopAll()
	defer root.Coordinator().Stop()

	e, err := buildWebServer(root)
	if err != nil {
		log.Fatalf("web server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	// a missing .env is fine in containerized deployments
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:        envOrDefault("HTTP_PORT", "8080"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          envOrDefault("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:       envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		AmqpURL:         os.Getenv("AMQP_URL"),
		CatalogBaseURL:  os.Getenv("CATALOG_BASE_URL"),
		DispatchBaseURL: os.Getenv("DISPATCH_BASE_URL"),
		MailerBaseURL:   os.Getenv("MAILER_BASE_URL"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &invoicerepo.InvoiceDTO{}, &invoicerepo.SequenceDTO{})
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return gormDB, nil
}

func buildWebServer(root *cmd.CompositionRoot) (*echo.Echo, error) {
	getOrderHandler, err := root.CreateGetOrderQueryHandler()
	if err != nil {
		return nil, err
	}
	getActiveOrdersHandler, err := root.CreateGetActiveOrdersQueryHandler()
	if err != nil {
		return nil, err
	}
	getInvoiceArtifactHandler, err := root.CreateGetInvoiceArtifactQueryHandler()
	if err != nil {
		return nil, err
	}

	server := httpserver.NewServer(
		root.CreateAddCartItemCommandHandler(),
		root.CreateSetCartItemQuantityCommandHandler(),
		root.CreateRemoveCartItemCommandHandler(),
		root.CreateCheckoutCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateMarkPaymentCommandHandler(),
		root.CreateEnsureInvoiceCommandHandler(),
		root.CreateSendInvoiceEmailCommandHandler(),
		getOrderHandler,
		getActiveOrdersHandler,
		getInvoiceArtifactHandler,
	)

	e := echo.New()
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	return e, nil
}
