package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []Email
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, email Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func newDispatcher(t *testing.T, mailer Mailer, accounts ...domain.AdminAccount) *Dispatcher {
	t.Helper()
	d := NewDispatcher(repository.NewInMemoryAdminStore(accounts...), mailer, logger.NewNop())
	d.now = func() time.Time { return time.Date(2026, 7, 4, 16, 5, 9, 0, time.UTC) }
	return d
}

func admin(notificationEmail string) domain.AdminAccount {
	a := domain.NewAdminAccount("admin@x.com", "hash", time.Now())
	a.NotificationEmail = notificationEmail
	return *a
}

func TestNotifyOrder_RendersAndSends(t *testing.T) {
	mailer := &recordingMailer{}
	d := newDispatcher(t, mailer, admin("ordini@x.com"))

	phone := "333 1234567"
	err := d.NotifyOrder(context.Background(), domain.Order{
		CustomerName:  "Mario <b>Rossi</b>",
		CustomerEmail: "mario@example.com",
		CustomerPhone: &phone,
		ProductName:   "Olio Extra Vergine",
		ProductSize:   "1L",
		Quantity:      2,
		Status:        domain.OrderStatusJustOrdered,
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	email := mailer.sent[0]
	assert.Equal(t, "ordini@x.com", email.To)
	assert.Equal(t, SubjectNewOrder, email.Subject)
	assert.Contains(t, email.HTML, "Olio Extra Vergine")
	assert.Contains(t, email.HTML, "<strong>Telefono:</strong> 333 1234567")
	assert.Contains(t, email.HTML, "Appena ordinato")
	assert.NotContains(t, email.HTML, "<strong>Note:</strong>")
	assert.Contains(t, email.HTML, "Mario &lt;b&gt;Rossi&lt;/b&gt;")
	// 16:05 UTC is 18:05 CEST
	assert.Contains(t, email.HTML, "4/7/2026, 18:05:09")
}

func TestNotifyMessage_RendersAndSends(t *testing.T) {
	mailer := &recordingMailer{}
	d := newDispatcher(t, mailer, admin("info@x.com"))

	err := d.NotifyMessage(context.Background(), domain.Message{
		Name:        "Luca",
		Email:       "luca@example.com",
		RequestType: domain.RequestTypeFarmVisit,
		Body:        "Vorrei visitare il frantoio",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, SubjectNewMessage, mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].HTML, "Visita in azienda")
	assert.Contains(t, mailer.sent[0].HTML, "Vorrei visitare il frantoio")
}

func TestNotify_NotConfigured(t *testing.T) {
	mailer := &recordingMailer{}

	err := newDispatcher(t, mailer).NotifyMessage(context.Background(), domain.Message{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	err = newDispatcher(t, mailer, admin("")).NotifyOrder(context.Background(), domain.Order{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	assert.Empty(t, mailer.sent)
}

func TestNotify_TransportFailureIsDeliveryError(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("dial tcp: connection refused")}
	d := newDispatcher(t, mailer, admin("ordini@x.com"))

	err := d.NotifyOrder(context.Background(), domain.Order{Status: domain.OrderStatusJustOrdered})

	var dErr *domain.DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "ordini@x.com", dErr.Recipient)
}
