package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/google/uuid"
)

// InMemoryAdminStore реализация хранилища администратора в памяти
type InMemoryAdminStore struct {
	accounts map[uuid.UUID]domain.AdminAccount
	mutex    sync.RWMutex
}

// NewInMemoryAdminStore создает хранилище с переданными аккаунтами
func NewInMemoryAdminStore(accounts ...domain.AdminAccount) *InMemoryAdminStore {
	s := &InMemoryAdminStore{accounts: make(map[uuid.UUID]domain.AdminAccount)}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	return s
}

// Get возвращает самый ранний аккаунт
func (s *InMemoryAdminStore) Get(ctx context.Context) (domain.AdminAccount, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var first *domain.AdminAccount
	for _, a := range s.accounts {
		if first == nil || a.CreatedAt.Before(first.CreatedAt) {
			a := a
			first = &a
		}
	}
	if first == nil {
		return domain.AdminAccount{}, domain.NewNotFoundError("admin", "")
	}
	return *first, nil
}

// GetByID возвращает аккаунт по ID
func (s *InMemoryAdminStore) GetByID(ctx context.Context, id uuid.UUID) (domain.AdminAccount, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return domain.AdminAccount{}, domain.NewNotFoundError("admin", id.String())
	}
	return a, nil
}

// GetByEmail возвращает аккаунт по точному совпадению email
func (s *InMemoryAdminStore) GetByEmail(ctx context.Context, email string) (domain.AdminAccount, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.AdminAccount{}, domain.NewNotFoundError("admin", "")
}

// Create добавляет аккаунт
func (s *InMemoryAdminStore) Create(ctx context.Context, account domain.AdminAccount) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, a := range s.accounts {
		if a.Email == account.Email {
			return domain.NewDuplicateError("admin", "email", account.Email)
		}
	}
	s.accounts[account.ID] = account
	return nil
}

// UpdatePasswordHash перезаписывает хеш пароля
func (s *InMemoryAdminStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, at time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return domain.NewNotFoundError("admin", id.String())
	}
	a.PasswordHash = hash
	a.UpdatedAt = at
	s.accounts[id] = a
	return nil
}

// UpdateNotificationEmail перезаписывает email для уведомлений
func (s *InMemoryAdminStore) UpdateNotificationEmail(ctx context.Context, id uuid.UUID, email string, at time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return domain.NewNotFoundError("admin", id.String())
	}
	a.NotificationEmail = email
	a.UpdatedAt = at
	s.accounts[id] = a
	return nil
}

// InMemoryCustomerRepository реализация репозитория в памяти
type InMemoryCustomerRepository struct {
	customers map[uuid.UUID]domain.Customer
	mutex     sync.RWMutex
}

// NewInMemoryCustomerRepository создает новый репозиторий клиентов в памяти
func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		customers: make(map[uuid.UUID]domain.Customer),
	}
}

// GetAll возвращает всех клиентов, новые первыми
func (r *InMemoryCustomerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	customers := make([]domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, customer)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})

	return customers, nil
}

// GetByID возвращает клиента по ID
func (r *InMemoryCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	customer, exists := r.customers[id]
	if !exists {
		return domain.Customer{}, domain.NewNotFoundError("customer", id.String())
	}

	return customer, nil
}

// Create создает нового клиента
func (r *InMemoryCustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Проверка на уникальность email
	for _, c := range r.customers {
		if c.Email == customer.Email {
			return domain.Customer{}, domain.NewDuplicateError("customer", "email", customer.Email)
		}
	}

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	r.customers[customer.ID] = customer

	return customer, nil
}

// Update обновляет существующего клиента
func (r *InMemoryCustomerRepository) Update(ctx context.Context, customer domain.Customer) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.customers[customer.ID]
	if !exists {
		return domain.NewNotFoundError("customer", customer.ID.String())
	}

	// Проверка на уникальность email
	for id, c := range r.customers {
		if c.Email == customer.Email && id != customer.ID {
			return domain.NewDuplicateError("customer", "email", customer.Email)
		}
	}

	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()

	r.customers[customer.ID] = customer

	return nil
}

// Delete удаляет клиента
func (r *InMemoryCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.customers[id]; !exists {
		return domain.NewNotFoundError("customer", id.String())
	}

	delete(r.customers, id)

	return nil
}

// Upsert создает клиента или дополняет существующего непустыми полями
func (r *InMemoryCustomerRepository) Upsert(ctx context.Context, contact domain.CustomerContact) (domain.Customer, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	for id, c := range r.customers {
		if c.Email != contact.Email {
			continue
		}
		if contact.Name != nil {
			c.Name = contact.Name
		}
		if contact.Phone != nil {
			c.Phone = contact.Phone
		}
		c.UpdatedAt = now
		r.customers[id] = c
		return c, nil
	}

	customer := domain.Customer{
		ID:        uuid.New(),
		Email:     contact.Email,
		Name:      contact.Name,
		Phone:     contact.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.customers[customer.ID] = customer
	return customer, nil
}

// InMemoryOrderRepository реализация репозитория заказов в памяти
type InMemoryOrderRepository struct {
	orders map[uuid.UUID]domain.Order
	mutex  sync.RWMutex
}

// NewInMemoryOrderRepository создает новый репозиторий заказов в памяти
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: make(map[uuid.UUID]domain.Order)}
}

// List возвращает все заказы, новые первыми
func (r *InMemoryOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	orders := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// GetByID возвращает заказ по ID
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.NewNotFoundError("order", id.String())
	}
	return o, nil
}

// Create сохраняет заказ
func (r *InMemoryOrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders[order.ID] = order
	return order, nil
}

// Update перезаписывает заказ
func (r *InMemoryOrderRepository) Update(ctx context.Context, order domain.Order) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return domain.NewNotFoundError("order", order.ID.String())
	}
	r.orders[order.ID] = order
	return nil
}

// Delete удаляет заказ
func (r *InMemoryOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.NewNotFoundError("order", id.String())
	}
	delete(r.orders, id)
	return nil
}

// InMemoryMessageRepository реализация репозитория сообщений в памяти
type InMemoryMessageRepository struct {
	messages map[uuid.UUID]domain.Message
	mutex    sync.RWMutex
}

// NewInMemoryMessageRepository создает новый репозиторий сообщений в памяти
func NewInMemoryMessageRepository() *InMemoryMessageRepository {
	return &InMemoryMessageRepository{messages: make(map[uuid.UUID]domain.Message)}
}

// List возвращает все сообщения, новые первыми
func (r *InMemoryMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	messages := make([]domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		messages = append(messages, m)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

// GetByID возвращает сообщение по ID
func (r *InMemoryMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Message, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	m, ok := r.messages[id]
	if !ok {
		return domain.Message{}, domain.NewNotFoundError("message", id.String())
	}
	return m, nil
}

// Create сохраняет сообщение
func (r *InMemoryMessageRepository) Create(ctx context.Context, message domain.Message) (domain.Message, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	r.messages[message.ID] = message
	return message, nil
}

// UpdateStatus меняет статус сообщения
func (r *InMemoryMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus, at time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return domain.NewNotFoundError("message", id.String())
	}
	m.Status = status
	m.UpdatedAt = at
	r.messages[id] = m
	return nil
}

// Delete удаляет сообщение
func (r *InMemoryMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.messages[id]; !ok {
		return domain.NewNotFoundError("message", id.String())
	}
	delete(r.messages, id)
	return nil
}

// InMemoryProductRepository каталог товаров в памяти
type InMemoryProductRepository struct {
	products []domain.Product
	mutex    sync.RWMutex
}

// NewInMemoryProductRepository создает каталог из переданных товаров
func NewInMemoryProductRepository(products ...domain.Product) *InMemoryProductRepository {
	return &InMemoryProductRepository{products: products}
}

// List возвращает товары по имени
func (r *InMemoryProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	products := make([]domain.Product, len(r.products))
	copy(products, r.products)
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// GetByName возвращает товар по точному имени
func (r *InMemoryProductRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Product{}, domain.NewNotFoundError("product", name)
}
