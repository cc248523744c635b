package handlers

import (
	"net/http"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/intake"
	"github.com/Dhoini/olio-backoffice/internal/service"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
)

type messageRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	RequestType string `json:"request_type"`
	Message     string `json:"message"`
	Status      string `json:"status"`
}

type messageStatusRequest struct {
	Status string `json:"status"`
}

// MessageHandler форма контактов и сообщения в админке
type MessageHandler struct {
	intake   IntakeService
	messages service.MessageService
	log      *logger.Logger
}

// NewMessageHandler создает обработчик сообщений
func NewMessageHandler(intake IntakeService, messages service.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		intake:   intake,
		messages: messages,
		log:      log,
	}
}

// SubmitContact принимает сообщение с сайта
func (h *MessageHandler) SubmitContact(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, intake.MsgMessageFieldsRequired)
		return
	}

	receipt, err := h.intake.SubmitMessage(c.Request.Context(), intake.MessageSubmission{
		Name:        req.Name,
		Email:       req.Email,
		RequestType: req.RequestType,
		Body:        req.Message,
	})
	if err != nil {
		respondError(c, h.log, err, "Errore nell'invio del messaggio")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Messaggio inviato con successo",
		"id":      receipt.ID,
	})
}

// GetMessages возвращает все сообщения без изменения статусов
func (h *MessageHandler) GetMessages(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero dei messaggi")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// CreateMessage создает сообщение из админки
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, intake.MsgMessageFieldsRequired)
		return
	}

	sub := intake.MessageSubmission{
		Name:        req.Name,
		Email:       req.Email,
		RequestType: req.RequestType,
		Body:        req.Message,
	}
	if req.Status != "" {
		status, err := domain.ParseMessageStatus(req.Status)
		if err != nil {
			respondError(c, h.log, err, "")
			return
		}
		sub.Status = status
	}

	receipt, err := h.intake.SubmitMessage(c.Request.Context(), sub)
	if err != nil {
		respondError(c, h.log, err, "Errore nella creazione del messaggio")
		return
	}

	message, err := h.messages.GetByID(c.Request.Context(), receipt.ID.String())
	if err != nil {
		respondError(c, h.log, err, "Errore nella creazione del messaggio")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// GetMessage открывает сообщение: новое или непрочитанное становится прочитанным
func (h *MessageHandler) GetMessage(c *gin.Context) {
	message, err := h.messages.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero del messaggio")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// UpdateMessage меняет статус сообщения
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var req messageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, MsgInvalidRequest)
		return
	}

	message, err := h.messages.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.log, err, "Errore nell'aggiornamento del messaggio")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// DeleteMessage удаляет сообщение
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Errore nell'eliminazione del messaggio")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messaggio eliminato con successo"})
}
