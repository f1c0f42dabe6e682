package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"orbitpaws/internal/app/shop/catalog"
	"orbitpaws/internal/app/shop/config"
	"orbitpaws/internal/app/shop/handler"
	"orbitpaws/internal/app/shop/janitor"
	"orbitpaws/internal/app/shop/repository"
	"orbitpaws/internal/app/shop/service"
	"orbitpaws/internal/app/shop/util"
	"orbitpaws/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("shop-service", cfg.Server.LogLevel)

	redisClient, err := repository.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	stateRepo := repository.NewStateRepository(redisClient, cfg.Redis.TTL)
	defer stateRepo.Close()
	logger.Info().
		Str("address", cfg.Redis.Address()).
		Msg("Connected to Redis")

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load catalog")
	}
	logger.Info().
		Str("source", cfg.Shop.CatalogSource).
		Int("products", cat.Len()).
		Msg("Catalog loaded")

	var producer util.MessagePublisher
	if cfg.Kafka.Enabled {
		kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		logger.Info().
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	}

	shopService := service.NewShopService(cat, stateRepo, cfg.Shop.SearchDebounce, cfg.Shop.LoadingDelay, cfg.Shop.SessionTTL)
	cartService := service.NewCartService(cat, stateRepo, producer)

	sessionJanitor := janitor.New(shopService, cartService.Forget)
	if err := sessionJanitor.Start(cfg.Shop.SweepSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start session janitor")
	}
	defer sessionJanitor.Stop()

	shopHandler := handler.NewShopHandler(shopService)
	cartHandler := handler.NewCartHandler(cartService)
	catalogHandler := handler.NewCatalogHandler(cat)
	router := handler.SetupRoutes(shopHandler, cartHandler, catalogHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Server.Port).
			Msg("Starting Shop Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Shop Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Shop Service stopped gracefully")
}

// loadCatalog собирает каталог из сконфигурированного источника
// static - встроенный набор товаров, postgres - полное сканирование таблицы
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Shop.CatalogSource == config.CatalogSourceStatic {
		return catalog.New(catalog.Seed()), nil
	}

	conn, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db, err := repository.OpenGormDB(conn)
	if err != nil {
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	productRepo := repository.NewProductRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := productRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	return catalog.New(products), nil
}
