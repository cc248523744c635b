package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/auth"
	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/middleware"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthService операции с учетными данными администратора
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (auth.LoginResult, error)
	UpdatePassword(ctx context.Context, adminID uuid.UUID, current, next string) error
	UpdateNotificationEmail(ctx context.Context, adminID uuid.UUID, email string) error
	Settings(ctx context.Context, adminID uuid.UUID) (domain.AdminView, error)
}

// CookieConfig параметры cookie сессии
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type notificationEmailRequest struct {
	NotificationEmail string `json:"notificationEmail"`
}

// AuthHandler вход, выход и настройки администратора
type AuthHandler struct {
	service AuthService
	cookie  CookieConfig
	log     *logger.Logger
}

// NewAuthHandler создает обработчик аутентификации
func NewAuthHandler(service AuthService, cookie CookieConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookie:  cookie,
		log:     log,
	}
}

// Login проверяет учетные данные и выставляет cookie с токеном
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, "Email e password sono richiesti")
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, result.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login effettuato con successo",
		"token":   result.Token,
		"admin":   result.Admin,
	})
}

// Logout удаляет cookie сессии. Сам токен остается действительным до истечения срока.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout effettuato con successo"})
}

// GetSettings возвращает данные администратора
func (h *AuthHandler) GetSettings(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		respondError(c, h.log, domain.ErrUnauthenticated, "")
		return
	}

	admin, err := h.service.Settings(c.Request.Context(), adminID)
	if err != nil {
		respondError(c, h.log, err, "Errore nel recupero delle impostazioni")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// UpdatePassword меняет пароль администратора
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		respondError(c, h.log, domain.ErrUnauthenticated, "")
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, "Password attuale e nuova password sono richieste")
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, h.log, err, "Errore nell'aggiornamento della password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password aggiornata con successo"})
}

// UpdateNotificationEmail меняет адрес для уведомлений
func (h *AuthHandler) UpdateNotificationEmail(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		respondError(c, h.log, domain.ErrUnauthenticated, "")
		return
	}

	var req notificationEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err, "Email di notifica è richiesta")
		return
	}

	if err := h.service.UpdateNotificationEmail(c.Request.Context(), adminID, req.NotificationEmail); err != nil {
		respondError(c, h.log, err, "Errore nell'aggiornamento dell'email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email di notifica aggiornata con successo"})
}
