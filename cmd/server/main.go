package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jsantoso/fareview/internal/cache"
	"github.com/jsantoso/fareview/internal/handler"
	"github.com/jsantoso/fareview/internal/provider"
	"github.com/jsantoso/fareview/internal/ratelimit"
	"github.com/jsantoso/fareview/internal/search"
	"github.com/jsantoso/fareview/internal/session"
	"github.com/jsantoso/fareview/internal/view"
)

type Config struct {
	Port             string
	ProviderBaseURL  string
	ProviderToken    string
	DefaultCurrency  string
	SearchTimeout    time.Duration
	MaxRetries       int
	CacheEnabled     bool
	RedisHost        string
	RedisPort        string
	RedisTTL         time.Duration
	SessionTTL       time.Duration
	SessionSweepTick time.Duration
}

func main() {
	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	flightProvider, err := initializeProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize flight provider: %v", err)
	}
	log.Printf("Using %s flight provider", flightProvider.Name())

	var flightCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:        cfg.RedisHost,
			Port:        cfg.RedisPort,
			OfferTTL:    cfg.RedisTTL,
			AirportsTTL: 24 * time.Hour,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		flightCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		flightCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	rateLimiter := ratelimit.NewWithDefaults()
	rateLimiter.SetLimit(flightProvider.Name(), 10, 20)

	runner := search.NewRunner(flightProvider, flightCache, search.Config{
		Timeout:    cfg.SearchTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		RateLimiter: rateLimiter,
	})

	store := session.NewStore(cfg.SessionTTL)
	store.StartSweeper(context.Background(), cfg.SessionSweepTick)

	views := view.NewBuilder(cfg.DefaultCurrency)
	h := handler.New(store, runner, flightProvider, flightCache, views)

	api := e.Group("/api/v1")
	h.Register(api)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting fareview server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		ProviderBaseURL:  getEnv("DUFFEL_API_URL", "https://api.duffel.com"),
		ProviderToken:    getEnv("DUFFEL_API_TOKEN", ""),
		DefaultCurrency:  getEnv("DEFAULT_CURRENCY", "GBP"),
		SearchTimeout:    getEnvDuration("SEARCH_TIMEOUT", 30*time.Second),
		MaxRetries:       getEnvInt("SEARCH_MAX_RETRIES", 3),
		CacheEnabled:     getEnvBool("CACHE_ENABLED", false),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisTTL:         getEnvDuration("REDIS_TTL", 5*time.Minute),
		SessionTTL:       getEnvDuration("SESSION_TTL", 30*time.Minute),
		SessionSweepTick: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func initializeProvider(cfg Config) (provider.Provider, error) {
	if cfg.ProviderToken != "" {
		return provider.NewDuffelProvider(provider.DuffelConfig{
			BaseURL: cfg.ProviderBaseURL,
			Token:   cfg.ProviderToken,
			Timeout: cfg.SearchTimeout,
		}), nil
	}

	log.Println("No DUFFEL_API_TOKEN set, using static sample data")
	return provider.NewStaticProvider()
}
