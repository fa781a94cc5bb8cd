package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/samstech/techstore/internal/cart"
	"github.com/samstech/techstore/internal/catalog"
	"github.com/samstech/techstore/internal/checkout"
	"github.com/samstech/techstore/internal/httpapi"
	"github.com/samstech/techstore/internal/notify"
	"github.com/samstech/techstore/internal/orders"
	"github.com/samstech/techstore/internal/prefs"
	"github.com/samstech/techstore/internal/view"
)

type Config struct {
	HTTPPort        string
	CatalogDBPath   string
	MigrationsPath  string
	RedisAddr       string
	KafkaBrokers    string
	RequestTimeout  time.Duration
	SubmitTimeout   time.Duration
	ShutdownTimeout time.Duration
	CartIdleTTL     time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "catalog.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:  30 * time.Second,
		SubmitTimeout:   10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CartIdleTTL:     cart.DefaultIdleTTL,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	// Seed the static catalog once from SQLite.
	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	products, err := repo.GetAllProducts(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if errClose := repo.Close(); errClose != nil {
		log.Printf("failed to close catalog database: %v", errClose)
	}
	cat := catalog.New(products)
	log.Printf("catalog loaded: %d products, %d pages", cat.Len(), cat.TotalPages())

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	prefsService := prefs.NewService(prefs.NewRedisStore(redisClient))

	carts := cart.NewStore(cart.WithIdleTTL(cfg.CartIdleTTL))
	defer carts.Close()

	var placer checkout.OrderPlacer
	if cfg.KafkaBrokers != "" {
		kafkaPlacer := orders.NewKafkaPlacer(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPlacer.Close()
		placer = kafkaPlacer
	} else {
		log.Println("KAFKA_BROKERS not set, using stub order placer")
		placer = orders.StubPlacer{Delay: 2 * time.Second}
	}

	notifier := notify.LogNotifier{}
	manager := checkout.NewManager(carts, placer, notifier, checkout.WithSubmitTimeout(cfg.SubmitTimeout))
	views := view.NewController(cat, carts, manager)
	manager.BindOverlays(views)
	views.OnPageChange(func(sessionID string, pageNumber int) {
		log.Printf("session %v changed to page %d", sessionID, pageNumber)
	})

	router := httpapi.NewRouter(httpapi.Deps{
		Catalog:        cat,
		Carts:          carts,
		Checkout:       manager,
		Views:          views,
		Prefs:          prefsService,
		Notifier:       notifier,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on :%v", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
