package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/api/rest/handlers"
	"github.com/Dhoini/olio-backoffice/internal/auth"
	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/intake"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/internal/middleware"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/internal/service"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const cookieName = "admin_token"

type failingNotifier struct{}

func (failingNotifier) NotifyOrder(context.Context, domain.Order) error {
	return &domain.DeliveryError{Recipient: "admin@x.com", Err: errors.New("smtp down")}
}

func (failingNotifier) NotifyMessage(context.Context, domain.Message) error {
	return domain.ErrNotConfigured
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type testServer struct {
	router    *gin.Engine
	orders    *repository.InMemoryOrderRepository
	messages  *repository.InMemoryMessageRepository
	customers *repository.InMemoryCustomerRepository
	admins    *repository.InMemoryAdminStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("olio2024")
	require.NoError(t, err)

	ts := &testServer{
		orders:    repository.NewInMemoryOrderRepository(),
		messages:  repository.NewInMemoryMessageRepository(),
		customers: repository.NewInMemoryCustomerRepository(),
		admins:    repository.NewInMemoryAdminStore(*domain.NewAdminAccount("admin@x.com", hash, time.Now())),
	}
	products := repository.NewInMemoryProductRepository(
		domain.Product{Name: "Olio Extra Vergine", Sizes: []string{"500ml", "1L", "3L", "5L"}},
	)

	tokens, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)
	authService, err := auth.NewService(ts.admins, hasher, tokens, log)
	require.NoError(t, err)

	registry := metrics.NewRegistry()
	intakeService := intake.NewService(intake.Deps{
		Products:  products,
		Orders:    ts.orders,
		Messages:  ts.messages,
		Customers: ts.customers,
		Notifier:  failingNotifier{},
		Metrics:   metrics.NewIntakeMetrics(registry),
		Log:       log,
	})
	orderService := service.NewOrderService(ts.orders, intakeService, log)
	messageService := service.NewMessageService(ts.messages, log)
	customerService := service.NewCustomerService(ts.customers, log)
	dashboard := service.NewDashboardService(ts.orders, ts.messages, ts.customers, products, log)

	h := Handlers{
		Auth:      handlers.NewAuthHandler(authService, handlers.CookieConfig{Name: cookieName}, log),
		Orders:    handlers.NewOrderHandler(intakeService, orderService, products, log),
		Messages:  handlers.NewMessageHandler(intakeService, messageService, log),
		Customers: handlers.NewCustomerHandler(customerService, log),
		Dashboard: handlers.NewDashboardHandler(dashboard, products, log),
		Health:    handlers.NewHealthHandler(okPinger{}, log),
	}
	jwt := middleware.NewJWTMiddleware(authService, cookieName, log)
	ts.router = SetupRouter(h, jwt, registry, log)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/admin/auth/login", gin.H{"email": "admin@x.com", "password": "olio2024"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/admin/auth/login", gin.H{"email": "admin@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Credenziali non valide", decode(t, w)["error"])

	w = ts.do(t, http.MethodPost, "/api/admin/auth/login", gin.H{"email": "nobody@x.com", "password": "olio2024"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Credenziali non valide", decode(t, w)["error"])

	w = ts.do(t, http.MethodPost, "/api/admin/auth/login", gin.H{"email": "admin@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email e password sono richiesti", decode(t, w)["error"])

	w = ts.do(t, http.MethodPost, "/api/admin/auth/login", gin.H{"email": "admin@x.com", "password": "olio2024"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	admin := body["admin"].(map[string]any)
	assert.Equal(t, "admin@x.com", admin["email"])
	assert.Equal(t, "admin@x.com", admin["notificationEmail"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/admin/orders", "/api/admin/messages", "/api/admin/clients", "/api/admin/settings", "/api/admin/dashboard"} {
		w := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := ts.do(t, http.MethodGet, "/api/admin/orders", nil, &http.Cookie{Name: cookieName, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgInvalidToken, decode(t, w)["error"])
}

func TestBearerHeaderIsAccepted(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	admin := decode(t, w)["admin"].(map[string]any)
	assert.Equal(t, "admin@x.com", admin["email"])
}

func TestPublicOrderSubmission(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/orders", gin.H{
		"customer_name":  "Mario Rossi",
		"customer_email": "mario@example.com",
		"product_name":   "Olio Extra Vergine",
		"product_size":   "1L",
		"quantity":       2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Ordine creato con successo", body["message"])
	assert.NotEmpty(t, body["order_id"])

	orders, _ := ts.orders.List(context.Background())
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusJustOrdered, orders[0].Status)
	customers, _ := ts.customers.GetAll(context.Background())
	assert.Len(t, customers, 1)

	// количество строкой, как из HTML формы
	w = ts.do(t, http.MethodPost, "/api/orders", gin.H{
		"customer_name":  "Mario Rossi",
		"customer_email": "mario@example.com",
		"product_name":   "Olio Extra Vergine",
		"product_size":   "5L",
		"quantity":       "3",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customers, _ = ts.customers.GetAll(context.Background())
	assert.Len(t, customers, 1)
}

func TestPublicOrderSubmission_Rejected(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/orders", gin.H{
		"customer_name":  "Mario Rossi",
		"customer_email": "mario@example.com",
		"product_name":   "Olio Extra Vergine",
		"product_size":   "10L",
		"quantity":       1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Formato prodotto non valido", decode(t, w)["error"])

	w = ts.do(t, http.MethodPost, "/api/orders", gin.H{"customer_name": "Mario Rossi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Tutti i campi obbligatori devono essere compilati", decode(t, w)["error"])

	orders, _ := ts.orders.List(context.Background())
	assert.Empty(t, orders)
}

func TestContactSubmission(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/contact", gin.H{
		"name":         "Giulia",
		"email":        "giulia@example.it",
		"request_type": "Visita in azienda",
		"message":      "Possiamo visitare il frantoio a novembre?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Messaggio inviato con successo", body["message"])
	assert.NotEmpty(t, body["id"])

	w = ts.do(t, http.MethodPost, "/api/contact", gin.H{
		"name":         "Giulia",
		"email":        "giulia@example.it",
		"request_type": "Reclamo",
		"message":      "Testo",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Tipo di richiesta non valido", decode(t, w)["error"])
}

func TestAdminMessageOpenMarksRead(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/contact", gin.H{
		"name":         "Giulia",
		"email":        "giulia@example.it",
		"request_type": "Altro",
		"message":      "Ciao",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = ts.do(t, http.MethodGet, "/api/admin/messages", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode(t, w)["messages"].([]any)
	require.Len(t, listed, 1)
	assert.Equal(t, "Nuovo", listed[0].(map[string]any)["status"])

	w = ts.do(t, http.MethodGet, "/api/admin/messages/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Letto", decode(t, w)["message"].(map[string]any)["status"])

	w = ts.do(t, http.MethodPut, "/api/admin/messages/"+id, gin.H{"status": "Non letto"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Non letto", decode(t, w)["message"].(map[string]any)["status"])
}

func TestAdminOrderLifecycle(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/admin/orders", gin.H{
		"customer_name":  "Anna Bianchi",
		"customer_email": "anna@example.it",
		"product_name":   "Olio Extra Vergine",
		"product_size":   "3L",
		"quantity":       1,
		"status":         "Pagato",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode(t, w)["order"].(map[string]any)
	assert.Equal(t, "Pagato", order["status"])
	id := order["id"].(string)

	w = ts.do(t, http.MethodPut, "/api/admin/orders/"+id, gin.H{"status": "Consegnato"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Consegnato", decode(t, w)["order"].(map[string]any)["status"])

	w = ts.do(t, http.MethodPut, "/api/admin/orders/"+id, gin.H{"status": "Spedito"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/admin/orders/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ordine eliminato con successo", decode(t, w)["message"])

	w = ts.do(t, http.MethodDelete, "/api/admin/orders/"+id, nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ordine non trovato", decode(t, w)["error"])
}

func TestAdminClients(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.do(t, http.MethodPost, "/api/admin/clients", gin.H{"email": "anna@example.it", "name": "Anna"}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/admin/clients", gin.H{"email": "anna@example.it"}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/admin/clients", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["clients"].([]any), 1)
}

func TestSettingsUpdates(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t)

	w := ts.do(t, http.MethodPut, "/api/admin/settings/password", gin.H{"currentPassword": "sbagliata", "newPassword": "nuova123"}, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Password attuale non corretta", decode(t, w)["error"])

	w = ts.do(t, http.MethodPut, "/api/admin/settings/password", gin.H{"currentPassword": "olio2024", "newPassword": "abc"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/admin/settings/password", gin.H{"currentPassword": "olio2024", "newPassword": "nuova123"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/admin/auth/login", gin.H{"email": "admin@x.com", "password": "nuova123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, "/api/admin/settings/email", gin.H{"notificationEmail": "non-una-email"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/admin/settings/email", gin.H{"notificationEmail": "ordini@frantoio.it"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	account, err := ts.admins.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ordini@frantoio.it", account.NotificationEmail)
}

func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/admin/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	ts.do(t, http.MethodPost, "/api/orders", gin.H{"customer_name": "Mario"})
	w = ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "intake_submissions_total")
}
