package handlers

import (
	"net/http"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/service"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
)

// CustomerHandler обработчик для клиентов
type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

// NewCustomerHandler создает новый обработчик клиентов
func NewCustomerHandler(service service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log,
	}
}

// GetCustomers возвращает список всех клиентов
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero dei clienti")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": customers})
}

// CreateCustomer создает нового клиента
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req domain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, "Formato email non valido")
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Errore nella creazione del cliente")
		return
	}

	h.log.Infow("Customer created", "customerID", customer.ID)
	c.JSON(http.StatusCreated, gin.H{"client": customer})
}

// UpdateCustomer обновляет существующего клиента
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req domain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, "Formato email non valido")
		return
	}

	customer, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err, "Errore nell'aggiornamento del cliente")
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": customer})
}

// DeleteCustomer удаляет клиента
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Errore nell'eliminazione del cliente")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminato con successo"})
}
