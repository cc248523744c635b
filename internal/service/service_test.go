package service

import (
	"context"
	"testing"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFunc func(ctx context.Context, productName, size string) error

func (f catalogFunc) CheckCatalog(ctx context.Context, productName, size string) error {
	return f(ctx, productName, size)
}

func ptr[T any](v T) *T { return &v }

func seedOrder(t *testing.T, repo *repository.InMemoryOrderRepository, created time.Time, product string, qty int, status domain.OrderStatus) domain.Order {
	t.Helper()
	order, err := repo.Create(context.Background(), domain.Order{
		ID:            uuid.New(),
		CustomerName:  "Mario Rossi",
		CustomerEmail: "mario@example.it",
		ProductName:   product,
		ProductSize:   "1L",
		Quantity:      qty,
		Status:        status,
		CreatedAt:     created,
		UpdatedAt:     created,
	})
	require.NoError(t, err)
	return order
}

func seedMessage(t *testing.T, repo *repository.InMemoryMessageRepository, status domain.MessageStatus, rt domain.RequestType) domain.Message {
	t.Helper()
	now := time.Now().UTC()
	message, err := repo.Create(context.Background(), domain.Message{
		ID:          uuid.New(),
		Name:        "Giulia",
		Email:       "giulia@example.it",
		RequestType: rt,
		Body:        "Buongiorno",
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return message
}

func TestCustomerService_CreateDuplicate(t *testing.T) {
	svc := NewCustomerService(repository.NewInMemoryCustomerRepository(), logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CustomerRequest{Email: "anna@example.it", Name: "Anna", Phone: " "})
	require.NoError(t, err)
	assert.Equal(t, "Anna", domain.StringValue(created.Name))
	assert.Nil(t, created.Phone)

	_, err = svc.Create(ctx, domain.CustomerRequest{Email: "anna@example.it"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerService_UpdateAndDelete(t *testing.T) {
	svc := NewCustomerService(repository.NewInMemoryCustomerRepository(), logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CustomerRequest{Email: "anna@example.it", Name: "Anna"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID.String(), domain.CustomerRequest{Email: "anna.b@example.it", Phone: "055 123"})
	require.NoError(t, err)
	assert.Equal(t, "anna.b@example.it", updated.Email)
	assert.Nil(t, updated.Name)
	assert.Equal(t, "055 123", domain.StringValue(updated.Phone))

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerService_InvalidInput(t *testing.T) {
	svc := NewCustomerService(repository.NewInMemoryCustomerRepository(), logger.NewNop())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), domain.CustomerRequest{Email: "anna"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderService_UpdateStatusFreely(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(repo, catalogFunc(func(context.Context, string, string) error {
		t.Fatal("catalog must not be consulted for a status-only update")
		return nil
	}), logger.NewNop())
	order := seedOrder(t, repo, time.Now(), "Olio Extra Vergine", 1, domain.OrderStatusDelivered)

	updated, err := svc.Update(context.Background(), order.ID.String(), domain.OrderUpdate{
		Status: ptr(domain.OrderStatusJustOrdered),
		Notes:  ptr("Richiamare"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusJustOrdered, updated.Status)
	assert.Equal(t, "Richiamare", domain.StringValue(updated.Notes))
}

func TestOrderService_UpdateRevalidatesProduct(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	var checked []string
	svc := NewOrderService(repo, catalogFunc(func(_ context.Context, name, size string) error {
		checked = append(checked, name+"/"+size)
		if size == "10L" {
			return domain.NewValidationError("product_size", "Formato prodotto non valido")
		}
		return nil
	}), logger.NewNop())
	order := seedOrder(t, repo, time.Now(), "Olio Extra Vergine", 1, domain.OrderStatusJustOrdered)

	_, err := svc.Update(context.Background(), order.ID.String(), domain.OrderUpdate{ProductSize: ptr("10L")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "1L", stored.ProductSize)

	_, err = svc.Update(context.Background(), order.ID.String(), domain.OrderUpdate{ProductSize: ptr("5L")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Olio Extra Vergine/10L", "Olio Extra Vergine/5L"}, checked)
}

func TestOrderService_UpdateTrimsContactFields(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	var checkedSize string
	svc := NewOrderService(repo, catalogFunc(func(_ context.Context, _, size string) error {
		checkedSize = size
		return nil
	}), logger.NewNop())
	order := seedOrder(t, repo, time.Now(), "Olio Extra Vergine", 1, domain.OrderStatusJustOrdered)

	_, err := svc.Update(context.Background(), order.ID.String(), domain.OrderUpdate{
		CustomerName:  ptr("  Mario Rossi "),
		CustomerEmail: ptr(" mario@example.it "),
		ProductSize:   ptr(" 5L "),
	})
	require.NoError(t, err)
	assert.Equal(t, "5L", checkedSize)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", stored.CustomerName)
	assert.Equal(t, "mario@example.it", stored.CustomerEmail)
	assert.Equal(t, "5L", stored.ProductSize)
}

func TestOrderService_UpdateRejectsBadValues(t *testing.T) {
	repo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(repo, catalogFunc(func(context.Context, string, string) error { return nil }), logger.NewNop())
	order := seedOrder(t, repo, time.Now(), "Olio Extra Vergine", 1, domain.OrderStatusJustOrdered)

	_, err := svc.Update(context.Background(), order.ID.String(), domain.OrderUpdate{Status: ptr(domain.OrderStatus("Spedito"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(context.Background(), order.ID.String(), domain.OrderUpdate{Quantity: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(context.Background(), uuid.NewString(), domain.OrderUpdate{Quantity: ptr(2)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessageService_OpenMarksRead(t *testing.T) {
	repo := repository.NewInMemoryMessageRepository()
	svc := NewMessageService(repo, logger.NewNop())
	ctx := context.Background()

	fresh := seedMessage(t, repo, domain.MessageStatusNew, domain.RequestTypeOther)
	unread := seedMessage(t, repo, domain.MessageStatusUnread, domain.RequestTypeOther)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	for _, m := range listed {
		assert.NotEqual(t, domain.MessageStatusRead, m.Status)
	}

	for _, m := range []domain.Message{fresh, unread} {
		opened, err := svc.Open(ctx, m.ID.String())
		require.NoError(t, err)
		assert.Equal(t, domain.MessageStatusRead, opened.Status)

		stored, err := repo.GetByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MessageStatusRead, stored.Status)
	}
}

func TestMessageService_UpdateStatus(t *testing.T) {
	repo := repository.NewInMemoryMessageRepository()
	svc := NewMessageService(repo, logger.NewNop())
	ctx := context.Background()
	m := seedMessage(t, repo, domain.MessageStatusRead, domain.RequestTypeGeneralInfo)

	updated, err := svc.UpdateStatus(ctx, m.ID.String(), string(domain.MessageStatusUnread))
	require.NoError(t, err)
	assert.Equal(t, domain.MessageStatusUnread, updated.Status)

	_, err = svc.UpdateStatus(ctx, m.ID.String(), "Archiviato")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, m.ID.String()))
	_, err = svc.Open(ctx, m.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboardService_Stats(t *testing.T) {
	orders := repository.NewInMemoryOrderRepository()
	messages := repository.NewInMemoryMessageRepository()
	customers := repository.NewInMemoryCustomerRepository()
	products := repository.NewInMemoryProductRepository(
		domain.Product{Name: "Olio Extra Vergine", Sizes: []string{"1L"}},
		domain.Product{Name: "Olio Extra Vergine Biologico", Sizes: []string{"1L"}},
	)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	seedOrder(t, orders, now.Add(-time.Hour), "Olio Extra Vergine", 3, domain.OrderStatusJustOrdered)
	seedOrder(t, orders, now.Add(-48*time.Hour), "Olio Extra Vergine", 2, domain.OrderStatusPaid)
	seedOrder(t, orders, now.Add(-30*24*time.Hour), "Olio Extra Vergine Biologico", 1, domain.OrderStatusDelivered)
	seedMessage(t, messages, domain.MessageStatusNew, domain.RequestTypeFarmVisit)
	seedMessage(t, messages, domain.MessageStatusRead, domain.RequestTypeFarmVisit)
	_, err := customers.Upsert(context.Background(), domain.CustomerContact{Email: "mario@example.it"})
	require.NoError(t, err)

	svc := NewDashboardService(orders, messages, customers, products, logger.NewNop())
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalMessages)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 2, stats.RecentOrders)
	assert.Equal(t, 1, stats.UnreadMessages)
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusPaid])
	assert.Equal(t, 2, stats.MessagesByType[domain.RequestTypeFarmVisit])
	assert.Equal(t, 0, stats.MessagesByType[domain.RequestTypeOther])

	require.Len(t, stats.Products, 2)
	assert.Equal(t, domain.ProductStat{Name: "Olio Extra Vergine", Orders: 2, Quantity: 5}, stats.Products[0])
	assert.Equal(t, domain.ProductStat{Name: "Olio Extra Vergine Biologico", Orders: 1, Quantity: 1}, stats.Products[1])
}
