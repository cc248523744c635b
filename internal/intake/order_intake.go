package intake

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/pkg/req"
	"github.com/google/uuid"
)

const (
	MsgOrderFieldsRequired = "Tutti i campi obbligatori devono essere compilati"
	MsgInvalidProduct      = "Prodotto non valido"
	MsgInvalidProductSize  = "Formato prodotto non valido"
	MsgInvalidQuantity     = "Quantità non valida"
	MsgInvalidEmail        = "Indirizzo email non valido"
)

// OrderSubmission заказ из публичной формы или из админки.
// Quantity приходит строкой, как из HTML формы. Status задает только администратор.
type OrderSubmission struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ProductName   string
	ProductSize   string
	Quantity      string
	Notes         string
	Status        domain.OrderStatus
}

// SubmitOrder принимает заказ. Ошибки валидации и сохранения возвращаются,
// сбои справочника клиентов, уведомления и публикации события только логируются.
func (s *Service) SubmitOrder(ctx context.Context, sub OrderSubmission) (Receipt, error) {
	start := s.now()
	p := newPipeline(metrics.KindOrder, s.log, s.metrics)

	var order domain.Order
	err := s.runOrder(ctx, p, sub, &order)
	s.metrics.ObserveSubmission(metrics.KindOrder, outcome(err), time.Since(start))
	if err != nil {
		return p.receipt(uuid.Nil), err
	}

	s.log.Infow("Order received", "orderID", order.ID, "product", order.ProductName, "failedSteps", len(p.receipt(order.ID).Failed()))
	return p.receipt(order.ID), nil
}

func (s *Service) runOrder(ctx context.Context, p *pipeline, sub OrderSubmission, order *domain.Order) error {
	var quantity int

	err := p.critical(ctx, StepValidate, func(context.Context) error {
		var err error
		quantity, err = validateOrder(&sub)
		return err
	})
	if err != nil {
		return err
	}

	err = p.critical(ctx, StepCrossValidate, func(ctx context.Context) error {
		return s.checkCatalog(ctx, sub.ProductName, sub.ProductSize)
	})
	if err != nil {
		return err
	}

	err = p.critical(ctx, StepPersist, func(ctx context.Context) error {
		now := s.now().UTC()
		status := sub.Status
		if status == "" {
			status = domain.OrderStatusJustOrdered
		}
		created, err := s.orders.Create(ctx, domain.Order{
			ID:            uuid.New(),
			CustomerName:  sub.CustomerName,
			CustomerEmail: sub.CustomerEmail,
			CustomerPhone: domain.OptionalString(sub.CustomerPhone),
			ProductName:   sub.ProductName,
			ProductSize:   sub.ProductSize,
			Quantity:      quantity,
			Status:        status,
			Notes:         domain.OptionalString(sub.Notes),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return domain.NewPersistenceError("create order", err)
		}
		*order = created
		return nil
	})
	if err != nil {
		return err
	}

	p.bestEffort(ctx, StepUpsertCustomer, func(ctx context.Context) error {
		_, err := s.customers.Upsert(ctx, domain.CustomerContact{
			Email: order.CustomerEmail,
			Name:  domain.OptionalString(order.CustomerName),
			Phone: order.CustomerPhone,
		})
		return err
	})

	p.bestEffort(ctx, StepNotify, func(ctx context.Context) error {
		return s.notifier.NotifyOrder(ctx, *order)
	})

	if s.events != nil {
		p.bestEffort(ctx, StepPublishEvent, func(ctx context.Context) error {
			return s.events.PublishOrderReceived(ctx, *order)
		})
	}
	return nil
}

// validateOrder нормализует поля заказа и возвращает количество
func validateOrder(sub *OrderSubmission) (int, error) {
	sub.CustomerName = strings.TrimSpace(sub.CustomerName)
	sub.CustomerEmail = strings.TrimSpace(sub.CustomerEmail)
	sub.ProductName = strings.TrimSpace(sub.ProductName)
	sub.ProductSize = strings.TrimSpace(sub.ProductSize)
	sub.Quantity = strings.TrimSpace(sub.Quantity)

	if sub.CustomerName == "" || sub.CustomerEmail == "" || sub.ProductName == "" ||
		sub.ProductSize == "" || sub.Quantity == "" {
		return 0, domain.NewValidationError("", MsgOrderFieldsRequired)
	}
	if !req.IsEmail(sub.CustomerEmail) {
		return 0, domain.NewValidationError("customer_email", MsgInvalidEmail)
	}

	quantity, err := strconv.Atoi(sub.Quantity)
	if err != nil || quantity < 1 {
		return 0, domain.NewValidationError("quantity", MsgInvalidQuantity)
	}

	if sub.Status != "" && !sub.Status.Valid() {
		return 0, domain.NewValidationError("status", "Stato ordine non valido")
	}
	return quantity, nil
}

// checkCatalog проверяет, что товар существует и продается в указанном формате
func (s *Service) checkCatalog(ctx context.Context, productName, size string) error {
	product, err := s.products.GetByName(ctx, productName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("product_name", MsgInvalidProduct)
		}
		return domain.NewPersistenceError("load product", err)
	}
	if !product.HasSize(size) {
		return domain.NewValidationError("product_size", MsgInvalidProductSize)
	}
	return nil
}

// CheckCatalog используется при редактировании заказа администратором
func (s *Service) CheckCatalog(ctx context.Context, productName, size string) error {
	return s.checkCatalog(ctx, productName, size)
}
