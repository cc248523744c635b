package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL срок действия токена сессии, не настраивается
const TokenTTL = 24 * time.Hour

// Claims содержимое токена сессии администратора
type Claims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AdminUUID разбирает AdminID
func (c *Claims) AdminUUID() (uuid.UUID, error) {
	return uuid.Parse(c.AdminID)
}

// TokenManager выпускает и проверяет HS256 токены.
// Отзыва нет: токен действует до истечения срока даже после смены пароля.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager создает менеджер токенов
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &TokenManager{secret: []byte(secret), now: time.Now}, nil
}

// Issue подписывает токен для аккаунта
func (m *TokenManager) Issue(account domain.AdminAccount) (string, time.Time, error) {
	issuedAt := m.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(TokenTTL)

	claims := Claims{
		AdminID: account.ID.String(),
		Email:   account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify проверяет подпись, алгоритм и срок действия токена
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: malformed token", domain.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: invalid token signature", domain.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
	}

	if !token.Valid || claims.AdminID == "" {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthenticated)
	}
	return claims, nil
}
