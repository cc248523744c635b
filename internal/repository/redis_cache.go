package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// Ключи каталога товаров
	productCatalogKey   = "products:catalog"
	productByNamePrefix = "products:name:"

	// TTL для кэша
	defaultCacheTTL = 15 * time.Minute
)

// ProductCache кеш каталога товаров. Промах возвращает nil без ошибки.
type ProductCache interface {
	GetCatalog(ctx context.Context) ([]domain.Product, error)
	SetCatalog(ctx context.Context, products []domain.Product) error
	GetProduct(ctx context.Context, name string) (*domain.Product, error)
	SetProduct(ctx context.Context, product domain.Product) error
	Invalidate(ctx context.Context) error
}

// RedisCacheRepository реализует кеширование каталога с использованием Redis
type RedisCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCacheRepository создает новый экземпляр Redis репозитория
func NewRedisCacheRepository(ctx context.Context, redisAddr, redisPassword string, redisDB int, log *logger.Logger) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	// Проверяем соединение с Redis
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", redisAddr)
	return &RedisCacheRepository{
		client: client,
		ttl:    defaultCacheTTL,
		log:    log,
	}, nil
}

// Close закрывает соединение с Redis
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}

// Ping проверяет доступность Redis
func (r *RedisCacheRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetCatalog получает каталог из кеша
func (r *RedisCacheRepository) GetCatalog(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	found, err := r.getJSON(ctx, productCatalogKey, &products)
	if err != nil || !found {
		return nil, err
	}
	r.log.Debugw("Product catalog retrieved from cache", "count", len(products))
	return products, nil
}

// SetCatalog кеширует каталог
func (r *RedisCacheRepository) SetCatalog(ctx context.Context, products []domain.Product) error {
	return r.setJSON(ctx, productCatalogKey, products)
}

// GetProduct получает товар из кеша по имени
func (r *RedisCacheRepository) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	var product domain.Product
	found, err := r.getJSON(ctx, productByNamePrefix+name, &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

// SetProduct кеширует товар
func (r *RedisCacheRepository) SetProduct(ctx context.Context, product domain.Product) error {
	return r.setJSON(ctx, productByNamePrefix+product.Name, product)
}

// Invalidate удаляет каталог и все товары из кеша
func (r *RedisCacheRepository) Invalidate(ctx context.Context) error {
	keys := []string{productCatalogKey}
	iter := r.client.Scan(ctx, 0, productByNamePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan product keys: %w", err)
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Errorw("Failed to invalidate product cache", "error", err)
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

func (r *RedisCacheRepository) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.log.Debugw("Cache miss", "key", key)
			return false, nil
		}
		r.log.Errorw("Error reading from Redis", "error", err, "key", key)
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		r.log.Errorw("Failed to unmarshal cached value", "error", err, "key", key)
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCacheRepository) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.Errorw("Failed to write to Redis", "error", err, "key", key)
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}
