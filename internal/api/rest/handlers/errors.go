package handlers

import (
	"errors"
	"net/http"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/Dhoini/olio-backoffice/pkg/res"
	"github.com/gin-gonic/gin"
)

const (
	MsgInternalError  = "Errore interno del server"
	MsgInvalidRequest = "Richiesta non valida"
	MsgAccessDenied   = "Accesso negato"
	MsgDuplicateEmail = "Esiste già un cliente con questa email"
)

var notFoundMessages = map[string]string{
	"admin":    "Amministratore non trovato",
	"customer": "Cliente non trovato",
	"order":    "Ordine non trovato",
	"message":  "Messaggio non trovato",
	"product":  "Prodotto non trovato",
}

// respondError переводит ошибку сервиса в HTTP ответ.
// fallback показывается клиенту при внутренних ошибках, детали остаются в логе.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	status, message := classify(err, fallback)

	if status >= http.StatusInternalServerError {
		log.Errorw("Request failed", "path", c.FullPath(), "error", err)
	} else {
		log.Debugw("Request rejected", "path", c.FullPath(), "status", status, "error", err)
	}

	_ = c.Error(err)
	res.JsonResponse(c.Writer, res.ErrorResponse{Error: message, ErrorCode: status}, status)
	c.Abort()
}

func classify(err error, fallback string) (int, string) {
	var (
		verr  *domain.ValidationError
		cerr  *domain.CredentialsError
		nferr *domain.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.As(err, &cerr):
		return http.StatusUnauthorized, cerr.Message
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.MsgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, MsgAccessDenied
	case errors.As(err, &nferr):
		if msg, ok := notFoundMessages[nferr.Entity]; ok {
			return http.StatusNotFound, msg
		}
		return http.StatusNotFound, "Risorsa non trovata"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Risorsa non trovata"
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, MsgDuplicateEmail
	default:
		if fallback == "" {
			fallback = MsgInternalError
		}
		return http.StatusInternalServerError, fallback
	}
}

// badRequest ответ на тело запроса, которое не удалось разобрать
func badRequest(c *gin.Context, log *logger.Logger, err error, message string) {
	log.Debugw("Invalid request body", "path", c.FullPath(), "error", err)
	res.JsonResponse(c.Writer, res.ErrorResponse{Error: message, ErrorCode: http.StatusBadRequest}, http.StatusBadRequest)
	c.Abort()
}
