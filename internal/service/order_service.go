package service

import (
	"context"
	"strings"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/Dhoini/olio-backoffice/pkg/req"
)

// CatalogChecker проверяет пару товар/формат по каталогу
type CatalogChecker interface {
	CheckCatalog(ctx context.Context, productName, size string) error
}

// OrderService управление заказами из админки. Создание идет через прием заявок.
type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (domain.Order, error)
	Update(ctx context.Context, id string, update domain.OrderUpdate) (domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	repo    repository.OrderRepository
	catalog CatalogChecker
	log     *logger.Logger
	now     func() time.Time
}

// NewOrderService создает сервис заказов
func NewOrderService(repo repository.OrderRepository, catalog CatalogChecker, log *logger.Logger) OrderService {
	return &orderService{
		repo:    repo,
		catalog: catalog,
		log:     log.Named("orders"),
		now:     time.Now,
	}
}

func (s *orderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *orderService) GetByID(ctx context.Context, id string) (domain.Order, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}
	return s.repo.GetByID(ctx, uuidID)
}

// Update применяет частичное обновление. Переходы между статусами свободные,
// смена товара или формата проверяется по каталогу.
func (s *orderService) Update(ctx context.Context, id string, update domain.OrderUpdate) (domain.Order, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}
	if err := validateOrderUpdate(update); err != nil {
		return domain.Order{}, err
	}

	order, err := s.repo.GetByID(ctx, uuidID)
	if err != nil {
		return domain.Order{}, err
	}

	previous := order.Status
	update.Apply(&order, s.now().UTC())

	if update.TouchesProduct() {
		if err := s.catalog.CheckCatalog(ctx, order.ProductName, order.ProductSize); err != nil {
			return domain.Order{}, err
		}
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return domain.Order{}, err
	}

	if previous != order.Status {
		s.log.Infow("Order status changed", "orderID", order.ID, "from", previous, "to", order.Status)
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	uuidID, err := parseID(id)
	if err != nil {
		return err
	}

	s.log.Infow("Deleting order", "orderID", uuidID)
	return s.repo.Delete(ctx, uuidID)
}

func validateOrderUpdate(u domain.OrderUpdate) error {
	if u.Status != nil && !u.Status.Valid() {
		return domain.NewValidationError("status", "Stato ordine non valido")
	}
	if u.Quantity != nil && *u.Quantity < 1 {
		return domain.NewValidationError("quantity", "Quantità non valida")
	}
	if u.CustomerName != nil && strings.TrimSpace(*u.CustomerName) == "" {
		return domain.NewValidationError("customer_name", "Nome cliente è richiesto")
	}
	if u.CustomerEmail != nil && !req.IsEmail(strings.TrimSpace(*u.CustomerEmail)) {
		return domain.NewValidationError("customer_email", "Indirizzo email non valido")
	}
	if u.ProductName != nil && strings.TrimSpace(*u.ProductName) == "" {
		return domain.NewValidationError("product_name", "Prodotto non valido")
	}
	if u.ProductSize != nil && strings.TrimSpace(*u.ProductSize) == "" {
		return domain.NewValidationError("product_size", "Formato prodotto non valido")
	}
	return nil
}
