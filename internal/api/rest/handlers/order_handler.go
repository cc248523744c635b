package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/intake"
	"github.com/Dhoini/olio-backoffice/internal/service"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
)

// IntakeService прием заказов и сообщений
type IntakeService interface {
	SubmitOrder(ctx context.Context, sub intake.OrderSubmission) (intake.Receipt, error)
	SubmitMessage(ctx context.Context, sub intake.MessageSubmission) (intake.Receipt, error)
}

// Catalog чтение каталога товаров
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// flexText принимает из JSON и строку, и число: HTML формы шлют количество строкой
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexText(s)
		return nil
	}
	*f = flexText(data)
	return nil
}

type orderRequest struct {
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerPhone string   `json:"customer_phone"`
	ProductName   string   `json:"product_name"`
	ProductSize   string   `json:"product_size"`
	Quantity      flexText `json:"quantity"`
	Notes         string   `json:"notes"`
	Status        string   `json:"status"`
}

func (r orderRequest) submission() intake.OrderSubmission {
	return intake.OrderSubmission{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		ProductName:   r.ProductName,
		ProductSize:   r.ProductSize,
		Quantity:      string(r.Quantity),
		Notes:         r.Notes,
	}
}

// OrderHandler публичная форма заказа и управление заказами в админке
type OrderHandler struct {
	intake  IntakeService
	orders  service.OrderService
	catalog Catalog
	log     *logger.Logger
}

// NewOrderHandler создает обработчик заказов
func NewOrderHandler(intake IntakeService, orders service.OrderService, catalog Catalog, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		intake:  intake,
		orders:  orders,
		catalog: catalog,
		log:     log,
	}
}

// SubmitOrder принимает заказ с сайта. Статус всегда начальный.
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, intake.MsgOrderFieldsRequired)
		return
	}

	receipt, err := h.intake.SubmitOrder(c.Request.Context(), req.submission())
	if err != nil {
		respondError(c, h.log, err, "Errore nella creazione dell'ordine")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Ordine creato con successo",
		"order_id": receipt.ID,
	})
}

// GetProducts возвращает каталог для формы заказа
func (h *OrderHandler) GetProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero dei prodotti")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetOrders возвращает все заказы, новые первыми
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero degli ordini")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// CreateOrder создает заказ из админки, статус можно выбрать
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, intake.MsgOrderFieldsRequired)
		return
	}

	sub := req.submission()
	if req.Status != "" {
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			respondError(c, h.log, err, "")
			return
		}
		sub.Status = status
	}

	receipt, err := h.intake.SubmitOrder(c.Request.Context(), sub)
	if err != nil {
		respondError(c, h.log, err, "Errore nella creazione dell'ordine")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), receipt.ID.String())
	if err != nil {
		respondError(c, h.log, err, "Errore nella creazione dell'ordine")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// UpdateOrder частично обновляет заказ
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var update domain.OrderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, h.log, err, MsgInvalidRequest)
		return
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, h.log, err, "Errore nell'aggiornamento dell'ordine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder удаляет заказ
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Errore nell'eliminazione dell'ordine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ordine eliminato con successo"})
}
