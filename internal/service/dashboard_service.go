package service

import (
	"context"
	"sort"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	recentWindow = 7 * 24 * time.Hour
	latestLimit  = 5
)

// DashboardService собирает сводку для главной страницы админки
type DashboardService struct {
	orders    repository.OrderRepository
	messages  repository.MessageRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewDashboardService создает сервис сводки
func NewDashboardService(
	orders repository.OrderRepository,
	messages repository.MessageRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		orders:    orders,
		messages:  messages,
		customers: customers,
		products:  products,
		log:       log.Named("dashboard"),
		now:       time.Now,
	}
}

// Stats читает списки параллельно и агрегирует их
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var (
		orders    []domain.Order
		messages  []domain.Message
		customers []domain.Customer
		products  []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.orders.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		messages, err = s.messages.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.customers.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.products.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Errorw("Failed to load dashboard data", "error", err)
		return domain.DashboardStats{}, err
	}

	return aggregate(orders, messages, customers, products, s.now()), nil
}

func aggregate(orders []domain.Order, messages []domain.Message, customers []domain.Customer, products []domain.Product, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalOrders:    len(orders),
		TotalMessages:  len(messages),
		TotalCustomers: len(customers),
		OrdersByStatus: make(map[domain.OrderStatus]int),
		MessagesByType: make(map[domain.RequestType]int),
		Products:       []domain.ProductStat{},
		LatestOrders:   orders[:min(latestLimit, len(orders))],
		LatestMessages: messages[:min(latestLimit, len(messages))],
	}

	for _, status := range domain.AllOrderStatuses() {
		stats.OrdersByStatus[status] = 0
	}
	for _, t := range domain.AllRequestTypes() {
		stats.MessagesByType[t] = 0
	}

	byProduct := make(map[string]*domain.ProductStat, len(products))
	for _, p := range products {
		byProduct[p.Name] = &domain.ProductStat{Name: p.Name}
	}

	since := now.Add(-recentWindow)
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if o.CreatedAt.After(since) {
			stats.RecentOrders++
		}
		// заказы по товарам, которых уже нет в каталоге, тоже учитываются
		ps, ok := byProduct[o.ProductName]
		if !ok {
			ps = &domain.ProductStat{Name: o.ProductName}
			byProduct[o.ProductName] = ps
		}
		ps.Orders++
		ps.Quantity += o.Quantity
	}

	for _, m := range messages {
		stats.MessagesByType[m.RequestType]++
		if m.Status.MarksReadOnOpen() {
			stats.UnreadMessages++
		}
	}

	for _, ps := range byProduct {
		stats.Products = append(stats.Products, *ps)
	}
	sort.Slice(stats.Products, func(i, j int) bool {
		if stats.Products[i].Quantity != stats.Products[j].Quantity {
			return stats.Products[i].Quantity > stats.Products[j].Quantity
		}
		return stats.Products[i].Name < stats.Products[j].Name
	})

	return stats
}
