package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/Dhoini/olio-backoffice/pkg/req"
	"github.com/google/uuid"
)

const (
	// MinPasswordLength минимальная длина нового пароля
	MinPasswordLength = 6
	// bcrypt игнорирует все после 72 байт
	maxPasswordBytes = 72
)

// LoginResult результат успешной аутентификации
type LoginResult struct {
	Admin     domain.AdminView
	Token     string
	ExpiresAt time.Time
}

// Service аутентификация и управление учетными данными администратора
type Service struct {
	store     repository.AdminAccountStore
	hasher    Hasher
	tokens    *TokenManager
	log       *logger.Logger
	now       func() time.Time
	dummyHash string
}

// NewService создает сервис аутентификации
func NewService(store repository.AdminAccountStore, hasher Hasher, tokens *TokenManager, log *logger.Logger) (*Service, error) {
	// сравнение с этим хешем для неизвестного email выравнивает время ответа
	dummy, err := hasher.Hash("olio-timing-equaliser")
	if err != nil {
		return nil, err
	}
	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Authenticate проверяет email и пароль и выпускает токен.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *Service) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, domain.NewValidationError("", "Email e password sono richiesti")
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			s.log.Infow("Login rejected", "reason", "unknown email")
			return LoginResult{}, domain.NewCredentialsError(domain.MsgInvalidCredentials)
		}
		return LoginResult{}, domain.NewPersistenceError("find admin", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Errorw("Stored password hash is unusable", "adminID", account.ID, "error", err)
		}
		s.log.Infow("Login rejected", "reason", "wrong password", "adminID", account.ID)
		return LoginResult{}, domain.NewCredentialsError(domain.MsgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.Issue(account)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.Infow("Admin logged in", "adminID", account.ID)
	return LoginResult{Admin: account.View(), Token: token, ExpiresAt: expiresAt}, nil
}

// VerifyToken проверяет токен сессии
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// UpdatePassword меняет пароль после проверки текущего.
// Уже выпущенные токены остаются действительными.
func (s *Service) UpdatePassword(ctx context.Context, adminID uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return domain.NewValidationError("", "Password attuale e nuova password sono richieste")
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return domain.NewValidationError("newPassword", "La nuova password deve essere di almeno 6 caratteri")
	}
	if len(next) > maxPasswordBytes {
		return domain.NewValidationError("newPassword", "La nuova password è troppo lunga")
	}

	account, err := s.store.GetByID(ctx, adminID)
	if err != nil {
		return s.lookupError(err)
	}

	if err := s.hasher.Compare(account.PasswordHash, current); err != nil {
		s.log.Warnw("Password update rejected", "adminID", adminID)
		return domain.NewCredentialsError("Password attuale non corretta")
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	if err := s.store.UpdatePasswordHash(ctx, adminID, hash, s.now()); err != nil {
		return s.lookupError(err)
	}

	s.log.Infow("Admin password updated", "adminID", adminID)
	return nil
}

// UpdateNotificationEmail меняет адрес, на который приходят уведомления
func (s *Service) UpdateNotificationEmail(ctx context.Context, adminID uuid.UUID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.NewValidationError("notificationEmail", "Email di notifica è richiesta")
	}
	if !req.IsEmail(email) {
		return domain.NewValidationError("notificationEmail", "Formato email non valido")
	}

	if err := s.store.UpdateNotificationEmail(ctx, adminID, email, s.now()); err != nil {
		return s.lookupError(err)
	}

	s.log.Infow("Notification email updated", "adminID", adminID)
	return nil
}

// Settings возвращает публичные данные администратора
func (s *Service) Settings(ctx context.Context, adminID uuid.UUID) (domain.AdminView, error) {
	account, err := s.store.GetByID(ctx, adminID)
	if err != nil {
		return domain.AdminView{}, s.lookupError(err)
	}
	return account.View(), nil
}

// CreateAdmin создает аккаунт администратора. Вызывается только из CLI.
func (s *Service) CreateAdmin(ctx context.Context, email, password string) (domain.AdminAccount, error) {
	email = strings.TrimSpace(email)
	if !req.IsEmail(email) {
		return domain.AdminAccount{}, domain.NewValidationError("email", "Formato email non valido")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength || len(password) > maxPasswordBytes {
		return domain.AdminAccount{}, domain.NewValidationError("password", "La password deve avere tra 6 e 72 caratteri")
	}

	// администратор в системе один
	existing, err := s.store.Get(ctx)
	switch {
	case err == nil:
		return domain.AdminAccount{}, domain.NewDuplicateError("admin", "email", existing.Email)
	case !errors.Is(err, domain.ErrNotFound):
		return domain.AdminAccount{}, s.lookupError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.AdminAccount{}, err
	}

	account := domain.NewAdminAccount(email, hash, s.now().UTC())
	if err := s.store.Create(ctx, *account); err != nil {
		return domain.AdminAccount{}, err
	}

	s.log.Infow("Admin account provisioned", "adminID", account.ID, "email", email)
	return *account, nil
}

func (s *Service) lookupError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return domain.NewPersistenceError("admin account", err)
}
