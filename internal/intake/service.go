package intake

import (
	"time"

	"github.com/Dhoini/olio-backoffice/internal/kafka"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/internal/notify"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
)

// Deps зависимости сервиса приема заявок. Events и Metrics необязательны.
type Deps struct {
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Messages  repository.MessageRepository
	Customers repository.CustomerRepository
	Notifier  notify.Notifier
	Events    kafka.Publisher
	Metrics   metrics.IntakeMetrics
	Log       *logger.Logger
}

// Service принимает заказы и сообщения: проверяет, сохраняет, обновляет справочник
// клиентов и уведомляет администратора. Транзакции между шагами нет.
type Service struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	messages  repository.MessageRepository
	customers repository.CustomerRepository
	notifier  notify.Notifier
	events    kafka.Publisher
	metrics   metrics.IntakeMetrics
	log       *logger.Logger
	now       func() time.Time
}

// NewService создает сервис приема заявок
func NewService(deps Deps) *Service {
	m := deps.Metrics
	if m == nil {
		m = metrics.NopIntakeMetrics{}
	}
	return &Service{
		products:  deps.Products,
		orders:    deps.Orders,
		messages:  deps.Messages,
		customers: deps.Customers,
		notifier:  deps.Notifier,
		events:    deps.Events,
		metrics:   m,
		log:       deps.Log.Named("intake"),
		now:       time.Now,
	}
}
