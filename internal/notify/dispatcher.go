package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"
	_ "time/tzdata"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
)

const (
	SubjectNewOrder   = "🛒 Nuovo Ordine - Olio di Valeria"
	SubjectNewMessage = "💬 Nuovo Messaggio - Olio di Valeria"

	// формат it-IT: "15/10/2026, 14:03:27"
	timestampLayout = "2/1/2006, 15:04:05"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Notifier уведомляет администратора о новых заявках
type Notifier interface {
	NotifyOrder(ctx context.Context, order domain.Order) error
	NotifyMessage(ctx context.Context, message domain.Message) error
}

// Dispatcher формирует письмо по шаблону и отправляет его на email для уведомлений.
// Возвращает nil, domain.ErrNotConfigured или *domain.DeliveryError. Повторов нет.
type Dispatcher struct {
	admins repository.AdminAccountStore
	mailer Mailer
	log    *logger.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewDispatcher создает диспетчер уведомлений
func NewDispatcher(admins repository.AdminAccountStore, mailer Mailer, log *logger.Logger) *Dispatcher {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		loc = time.UTC
	}
	return &Dispatcher{
		admins: admins,
		mailer: mailer,
		log:    log,
		loc:    loc,
		now:    time.Now,
	}
}

type orderView struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ProductName   string
	ProductSize   string
	Quantity      int
	Status        domain.OrderStatus
	Notes         string
	Timestamp     string
}

type messageView struct {
	Name        string
	Email       string
	RequestType domain.RequestType
	Body        string
	Timestamp   string
}

// NotifyOrder сообщает о новом заказе
func (d *Dispatcher) NotifyOrder(ctx context.Context, order domain.Order) error {
	view := orderView{
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: domain.StringValue(order.CustomerPhone),
		ProductName:   order.ProductName,
		ProductSize:   order.ProductSize,
		Quantity:      order.Quantity,
		Status:        order.Status,
		Notes:         domain.StringValue(order.Notes),
		Timestamp:     d.timestamp(),
	}
	return d.dispatch(ctx, SubjectNewOrder, "order.html", view)
}

// NotifyMessage сообщает о новом сообщении из формы контактов
func (d *Dispatcher) NotifyMessage(ctx context.Context, message domain.Message) error {
	view := messageView{
		Name:        message.Name,
		Email:       message.Email,
		RequestType: message.RequestType,
		Body:        message.Body,
		Timestamp:   d.timestamp(),
	}
	return d.dispatch(ctx, SubjectNewMessage, "message.html", view)
}

func (d *Dispatcher) dispatch(ctx context.Context, subject, tmpl string, data any) error {
	recipient, err := d.recipient(ctx)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return &domain.DeliveryError{Recipient: recipient, Err: fmt.Errorf("render %s: %w", tmpl, err)}
	}

	if err := d.mailer.Send(ctx, Email{To: recipient, Subject: subject, HTML: body.String()}); err != nil {
		return &domain.DeliveryError{Recipient: recipient, Err: err}
	}

	d.log.Infow("Notification sent", "subject", subject, "to", recipient)
	return nil
}

func (d *Dispatcher) recipient(ctx context.Context) (string, error) {
	account, err := d.admins.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotConfigured
		}
		return "", fmt.Errorf("failed to load notification email: %w", err)
	}
	if account.NotificationEmail == "" {
		return "", domain.ErrNotConfigured
	}
	return account.NotificationEmail, nil
}

func (d *Dispatcher) timestamp() string {
	return d.now().In(d.loc).Format(timestampLayout)
}
