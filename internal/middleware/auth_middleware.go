package middleware

import (
	"net/http"
	"strings"

	"github.com/Dhoini/olio-backoffice/internal/auth"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/Dhoini/olio-backoffice/pkg/res"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey тип для ключей контекста во избежание коллизий.
type ContextKey string

const (
	// ContextAdminIDKey ключ для ID администратора из токена
	ContextAdminIDKey ContextKey = "adminID"
	// ContextAdminEmailKey ключ для email администратора из токена
	ContextAdminEmailKey ContextKey = "adminEmail"

	authHeaderPrefix = "Bearer "

	MsgAccessDenied = "Accesso negato"
	MsgInvalidToken = "Token non valido"
)

// TokenVerifier проверяет токен сессии
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// JWTMiddleware пропускает запросы с действительным токеном из cookie или заголовка Authorization
type JWTMiddleware struct {
	verifier   TokenVerifier
	cookieName string
	log        *logger.Logger
}

func NewJWTMiddleware(verifier TokenVerifier, cookieName string, log *logger.Logger) *JWTMiddleware {
	return &JWTMiddleware{
		verifier:   verifier,
		cookieName: cookieName,
		log:        log,
	}
}

func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokens := m.extractTokens(c)
		if len(tokens) == 0 {
			m.handleAuthError(c, MsgAccessDenied, "missing token")
			return
		}

		var (
			claims *auth.Claims
			err    error
		)
		for _, tokenString := range tokens {
			claims, err = m.verifier.VerifyToken(tokenString)
			if err == nil {
				break
			}
		}
		if err != nil {
			m.handleAuthError(c, MsgInvalidToken, err.Error())
			return
		}

		adminID, err := claims.AdminUUID()
		if err != nil {
			m.handleAuthError(c, MsgInvalidToken, "admin id missing in token")
			return
		}

		c.Set(string(ContextAdminIDKey), adminID)
		c.Set(string(ContextAdminEmailKey), claims.Email)
		m.log.Debugw("Admin authenticated", "adminID", adminID)
		c.Next()
	}
}

// Сначала cookie, затем заголовок: устаревшая cookie не скрывает действующий Bearer токен
func (m *JWTMiddleware) extractTokens(c *gin.Context) []string {
	var tokens []string
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		tokens = append(tokens, cookie)
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, authHeaderPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, authHeaderPrefix)); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func (m *JWTMiddleware) handleAuthError(c *gin.Context, message, reason string) {
	m.log.Warnw("HTTP authentication failed", "path", c.Request.URL.Path, "reason", reason)
	res.JsonResponse(c.Writer, res.ErrorResponse{
		Error:     message,
		ErrorCode: http.StatusUnauthorized,
	}, http.StatusUnauthorized)
	c.Abort()
}

// AdminID возвращает ID администратора, установленный RequireAuth
func AdminID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(string(ContextAdminIDKey))
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
