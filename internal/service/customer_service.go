package service

import (
	"context"
	"strings"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/Dhoini/olio-backoffice/pkg/req"
	"github.com/google/uuid"
)

const MsgInvalidID = "ID non valido"

// CustomerService интерфейс сервиса для работы с клиентами
type CustomerService interface {
	GetAll(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	Create(ctx context.Context, req domain.CustomerRequest) (domain.Customer, error)
	Update(ctx context.Context, id string, req domain.CustomerRequest) (domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerService struct {
	repo repository.CustomerRepository
	log  *logger.Logger
}

// NewCustomerService создает новый сервис для работы с клиентами
func NewCustomerService(repo repository.CustomerRepository, log *logger.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.Named("customers"),
	}
}

func (s *customerService) GetAll(ctx context.Context) ([]domain.Customer, error) {
	s.log.Debugw("Getting all customers")
	return s.repo.GetAll(ctx)
}

func (s *customerService) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	return s.repo.GetByID(ctx, uuidID)
}

func (s *customerService) Create(ctx context.Context, r domain.CustomerRequest) (domain.Customer, error) {
	email, err := customerEmail(r.Email)
	if err != nil {
		return domain.Customer{}, err
	}

	s.log.Debugw("Creating customer", "email", email)
	return s.repo.Create(ctx, domain.Customer{
		ID:    uuid.New(),
		Email: email,
		Name:  domain.OptionalString(r.Name),
		Phone: domain.OptionalString(r.Phone),
	})
}

func (s *customerService) Update(ctx context.Context, id string, r domain.CustomerRequest) (domain.Customer, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}
	email, err := customerEmail(r.Email)
	if err != nil {
		return domain.Customer{}, err
	}

	existing, err := s.repo.GetByID(ctx, uuidID)
	if err != nil {
		return domain.Customer{}, err
	}

	// Редактирование из админки заменяет поля целиком, пустое значение очищает поле
	existing.Email = email
	existing.Name = domain.OptionalString(r.Name)
	existing.Phone = domain.OptionalString(r.Phone)

	if err := s.repo.Update(ctx, existing); err != nil {
		return domain.Customer{}, err
	}

	s.log.Infow("Customer updated", "customerID", existing.ID)
	return s.repo.GetByID(ctx, uuidID)
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	uuidID, err := parseID(id)
	if err != nil {
		return err
	}

	s.log.Infow("Deleting customer", "customerID", uuidID)
	return s.repo.Delete(ctx, uuidID)
}

func customerEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.NewValidationError("email", "Email è richiesta")
	}
	if !req.IsEmail(email) {
		return "", domain.NewValidationError("email", "Formato email non valido")
	}
	return email, nil
}

func parseID(id string) (uuid.UUID, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", MsgInvalidID)
	}
	return uuidID, nil
}
