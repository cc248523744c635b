package repository

import (
	"context"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
)

// CachedProductRepository реализует ProductRepository с кешированием.
// Ошибки кеша только логируются, источником истины остается БД.
type CachedProductRepository struct {
	repo  ProductRepository
	cache ProductCache
	log   *logger.Logger
}

// NewCachedProductRepository создает новый репозиторий с кешированием
func NewCachedProductRepository(repo ProductRepository, cache ProductCache, log *logger.Logger) ProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List получает каталог (сначала из кеша, потом из БД)
func (r *CachedProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	cached, err := r.cache.GetCatalog(ctx)
	if err != nil {
		r.log.Warnw("Error getting product catalog from cache", "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	products, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetCatalog(ctx, products); err != nil {
		r.log.Warnw("Failed to cache product catalog", "error", err)
	}
	return products, nil
}

// GetByName получает товар по имени (сначала из кеша, потом из БД)
func (r *CachedProductRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	cached, err := r.cache.GetProduct(ctx, name)
	if err != nil {
		r.log.Warnw("Error getting product from cache", "error", err, "name", name)
	}
	if cached != nil {
		return *cached, nil
	}

	product, err := r.repo.GetByName(ctx, name)
	if err != nil {
		return domain.Product{}, err
	}

	if err := r.cache.SetProduct(ctx, product); err != nil {
		r.log.Warnw("Failed to cache product", "error", err, "name", name)
	}
	return product, nil
}
