package service

import (
	"context"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
)

// MessageService управление сообщениями из формы контактов
type MessageService interface {
	List(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id string) (domain.Message, error)
	Open(ctx context.Context, id string) (domain.Message, error)
	UpdateStatus(ctx context.Context, id string, status string) (domain.Message, error)
	Delete(ctx context.Context, id string) error
}

type messageService struct {
	repo repository.MessageRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewMessageService создает сервис сообщений
func NewMessageService(repo repository.MessageRepository, log *logger.Logger) MessageService {
	return &messageService{
		repo: repo,
		log:  log.Named("messages"),
		now:  time.Now,
	}
}

// List возвращает сообщения, статусы не меняются
func (s *messageService) List(ctx context.Context) ([]domain.Message, error) {
	return s.repo.List(ctx)
}

// GetByID возвращает сообщение без изменения статуса
func (s *messageService) GetByID(ctx context.Context, id string) (domain.Message, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Message{}, err
	}
	return s.repo.GetByID(ctx, uuidID)
}

// Open возвращает сообщение и помечает его прочитанным, если оно было новым или непрочитанным
func (s *messageService) Open(ctx context.Context, id string) (domain.Message, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Message{}, err
	}

	message, err := s.repo.GetByID(ctx, uuidID)
	if err != nil {
		return domain.Message{}, err
	}
	if !message.Status.MarksReadOnOpen() {
		return message, nil
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, uuidID, domain.MessageStatusRead, now); err != nil {
		return domain.Message{}, err
	}
	message.Status = domain.MessageStatusRead
	message.UpdatedAt = now

	s.log.Debugw("Message marked as read", "messageID", uuidID)
	return message, nil
}

func (s *messageService) UpdateStatus(ctx context.Context, id string, status string) (domain.Message, error) {
	uuidID, err := parseID(id)
	if err != nil {
		return domain.Message{}, err
	}
	next, err := domain.ParseMessageStatus(status)
	if err != nil {
		return domain.Message{}, err
	}

	if err := s.repo.UpdateStatus(ctx, uuidID, next, s.now().UTC()); err != nil {
		return domain.Message{}, err
	}

	s.log.Infow("Message status changed", "messageID", uuidID, "status", next)
	return s.repo.GetByID(ctx, uuidID)
}

func (s *messageService) Delete(ctx context.Context, id string) error {
	uuidID, err := parseID(id)
	if err != nil {
		return err
	}

	s.log.Infow("Deleting message", "messageID", uuidID)
	return s.repo.Delete(ctx, uuidID)
}
