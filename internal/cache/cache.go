package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/provider"
)

// Cache stores raw upstream responses so a repeated search within its TTL
// skips the network. Offers are cached before normalization; the normalizer
// stays the single place raw records become Offers.
type Cache interface {
	GetOffers(ctx context.Context, criteria models.SearchCriteria) ([]provider.RawOffer, bool)
	SetOffers(ctx context.Context, criteria models.SearchCriteria, offers []provider.RawOffer) error
	GetAirports(ctx context.Context) ([]models.Airport, bool)
	SetAirports(ctx context.Context, airports []models.Airport) error
	Close() error
}

type RedisCache struct {
	client      *redis.Client
	offerTTL    time.Duration
	airportsTTL time.Duration
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	OfferTTL    time.Duration
	AirportsTTL time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:        "localhost",
		Port:        "6379",
		OfferTTL:    5 * time.Minute,
		AirportsTTL: 24 * time.Hour,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client:      client,
		offerTTL:    cfg.OfferTTL,
		airportsTTL: cfg.AirportsTTL,
	}, nil
}

const airportsKey = "airports:all"

func (c *RedisCache) GetOffers(ctx context.Context, criteria models.SearchCriteria) ([]provider.RawOffer, bool) {
	data, err := c.client.Get(ctx, offersKey(criteria)).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []provider.RawOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (c *RedisCache) SetOffers(ctx context.Context, criteria models.SearchCriteria, offers []provider.RawOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, offersKey(criteria), data, c.offerTTL).Err()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]models.Airport, bool) {
	data, err := c.client.Get(ctx, airportsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var airports []models.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, false
	}
	return airports, true
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []models.Airport) error {
	data, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey, data, c.airportsTTL).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetOffers(ctx context.Context, criteria models.SearchCriteria) ([]provider.RawOffer, bool) {
	return nil, false
}

func (c *NoOpCache) SetOffers(ctx context.Context, criteria models.SearchCriteria, offers []provider.RawOffer) error {
	return nil
}

func (c *NoOpCache) GetAirports(ctx context.Context) ([]models.Airport, bool) {
	return nil, false
}

func (c *NoOpCache) SetAirports(ctx context.Context, airports []models.Airport) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func offersKey(criteria models.SearchCriteria) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Passengers    int
		CabinClass    models.CabinClass
	}{
		Origin:        criteria.Origin,
		Destination:   criteria.Destination,
		DepartureDate: criteria.DepartureDate,
		Passengers:    criteria.Passengers,
		CabinClass:    criteria.CabinClass,
	}

	if criteria.ReturnDate != nil {
		keyData.ReturnDate = *criteria.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "offers:" + hex.EncodeToString(hash[:])
}
