package intake

import (
	"context"
	"strings"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/pkg/req"
	"github.com/google/uuid"
)

const MsgMessageFieldsRequired = "Tutti i campi sono obbligatori"

// MessageSubmission сообщение из формы контактов. Status задает только администратор.
type MessageSubmission struct {
	Name        string
	Email       string
	RequestType string
	Body        string
	Status      domain.MessageStatus
}

// SubmitMessage принимает сообщение из формы контактов
func (s *Service) SubmitMessage(ctx context.Context, sub MessageSubmission) (Receipt, error) {
	start := s.now()
	p := newPipeline(metrics.KindMessage, s.log, s.metrics)

	var message domain.Message
	err := s.runMessage(ctx, p, sub, &message)
	s.metrics.ObserveSubmission(metrics.KindMessage, outcome(err), time.Since(start))
	if err != nil {
		return p.receipt(uuid.Nil), err
	}

	s.log.Infow("Message received", "messageID", message.ID, "requestType", message.RequestType)
	return p.receipt(message.ID), nil
}

func (s *Service) runMessage(ctx context.Context, p *pipeline, sub MessageSubmission, message *domain.Message) error {
	err := p.critical(ctx, StepValidate, func(context.Context) error {
		return validateMessage(&sub)
	})
	if err != nil {
		return err
	}

	var requestType domain.RequestType
	err = p.critical(ctx, StepCrossValidate, func(context.Context) error {
		var err error
		requestType, err = domain.ParseRequestType(sub.RequestType)
		return err
	})
	if err != nil {
		return err
	}

	err = p.critical(ctx, StepPersist, func(ctx context.Context) error {
		now := s.now().UTC()
		status := sub.Status
		if status == "" {
			status = domain.MessageStatusNew
		}
		created, err := s.messages.Create(ctx, domain.Message{
			ID:          uuid.New(),
			Name:        sub.Name,
			Email:       sub.Email,
			RequestType: requestType,
			Body:        sub.Body,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return domain.NewPersistenceError("create message", err)
		}
		*message = created
		return nil
	})
	if err != nil {
		return err
	}

	p.bestEffort(ctx, StepUpsertCustomer, func(ctx context.Context) error {
		_, err := s.customers.Upsert(ctx, domain.CustomerContact{
			Email: message.Email,
			Name:  domain.OptionalString(message.Name),
		})
		return err
	})

	p.bestEffort(ctx, StepNotify, func(ctx context.Context) error {
		return s.notifier.NotifyMessage(ctx, *message)
	})

	if s.events != nil {
		p.bestEffort(ctx, StepPublishEvent, func(ctx context.Context) error {
			return s.events.PublishMessageReceived(ctx, *message)
		})
	}
	return nil
}

func validateMessage(sub *MessageSubmission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.RequestType = strings.TrimSpace(sub.RequestType)
	sub.Body = strings.TrimSpace(sub.Body)

	if sub.Name == "" || sub.Email == "" || sub.RequestType == "" || sub.Body == "" {
		return domain.NewValidationError("", MsgMessageFieldsRequired)
	}
	if !req.IsEmail(sub.Email) {
		return domain.NewValidationError("email", MsgInvalidEmail)
	}
	if sub.Status != "" && !sub.Status.Valid() {
		return domain.NewValidationError("status", "Stato messaggio non valido")
	}
	return nil
}
