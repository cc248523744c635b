package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Dhoini/olio-backoffice/internal/domain"
	"github.com/Dhoini/olio-backoffice/internal/repository"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc     *Service
	store   *repository.InMemoryAdminStore
	hasher  *BcryptHasher
	account domain.AdminAccount
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("olio2024")
	require.NoError(t, err)

	account := *domain.NewAdminAccount("admin@x.com", hash, time.Now().Add(-time.Hour))
	store := repository.NewInMemoryAdminStore(account)

	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	svc, err := NewService(store, hasher, tokens, logger.NewNop())
	require.NoError(t, err)
	return fixture{svc: svc, store: store, hasher: hasher, account: account}
}

func TestAuthenticate_Success(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Authenticate(context.Background(), "admin@x.com", "olio2024")
	require.NoError(t, err)
	assert.Equal(t, f.account.ID, result.Admin.ID)
	assert.Equal(t, "admin@x.com", result.Admin.NotificationEmail)

	claims, err := f.svc.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, f.account.ID.String(), claims.AdminID)
	assert.Equal(t, "admin@x.com", claims.Email)
}

func TestAuthenticate_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, errUnknown := f.svc.Authenticate(ctx, "nobody@x.com", "olio2024")
	_, errWrong := f.svc.Authenticate(ctx, "admin@x.com", "wrong")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.NotErrorIs(t, errUnknown, domain.ErrNotFound)
}

func TestAuthenticate_EmailIsCaseSensitive(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "Admin@X.com", "olio2024")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "admin@x.com", "")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email e password sono richiesti", vErr.Message)
}

func TestUpdatePassword_WrongCurrentDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.UpdatePassword(ctx, f.account.ID, "wrong", "nuovaPassword")
	var cErr *domain.CredentialsError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "Password attuale non corretta", cErr.Message)

	stored, err := f.store.GetByID(ctx, f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, f.account.PasswordHash, stored.PasswordHash)
}

func TestUpdatePassword_RotatesCredential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.UpdatePassword(ctx, f.account.ID, "olio2024", "nuovaPassword"))

	_, err := f.svc.Authenticate(ctx, "admin@x.com", "olio2024")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Authenticate(ctx, "admin@x.com", "nuovaPassword")
	assert.NoError(t, err)

	stored, err := f.store.GetByID(ctx, f.account.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.After(f.account.UpdatedAt))
}

func TestUpdatePassword_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.UpdatePassword(ctx, f.account.ID, "", "nuovaPassword")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.svc.UpdatePassword(ctx, f.account.ID, "olio2024", "12345")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// шесть байт, но три символа
	err = f.svc.UpdatePassword(ctx, f.account.ID, "olio2024", "ààà")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Authenticate(ctx, f.account.Email, "ààà")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = f.svc.UpdatePassword(ctx, f.account.ID, "olio2024", "àèìòùé")
	assert.NoError(t, err)
}

func TestUpdatePassword_UnknownAdmin(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdatePassword(context.Background(), uuid.New(), "olio2024", "nuovaPassword")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateNotificationEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateNotificationEmail(ctx, f.account.ID, " ordini@oliodivaleria.it "))

	view, err := f.svc.Settings(ctx, f.account.ID)
	require.NoError(t, err)
	assert.Equal(t, "ordini@oliodivaleria.it", view.NotificationEmail)
	assert.Equal(t, "admin@x.com", view.Email)
}

func TestUpdateNotificationEmail_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var vErr *domain.ValidationError
	err := f.svc.UpdateNotificationEmail(ctx, f.account.ID, "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email di notifica è richiesta", vErr.Message)

	err = f.svc.UpdateNotificationEmail(ctx, f.account.ID, "not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.svc.UpdateNotificationEmail(ctx, uuid.New(), "ok@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAdmin(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	tokens, err := NewTokenManager("s")
	require.NoError(t, err)
	store := repository.NewInMemoryAdminStore()
	svc, err := NewService(store, hasher, tokens, logger.NewNop())
	require.NoError(t, err)

	account, err := svc.CreateAdmin(context.Background(), "valeria@x.com", "segreto1")
	require.NoError(t, err)
	assert.Equal(t, "valeria@x.com", account.NotificationEmail)
	assert.NotEqual(t, "segreto1", account.PasswordHash)

	_, err = svc.CreateAdmin(context.Background(), "valeria@x.com", "segreto1")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.CreateAdmin(context.Background(), "other@x.com", "segreto2")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.CreateAdmin(context.Background(), "other@x.com", "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateAdmin(context.Background(), "other@x.com", "ààà")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBcryptHasher_Compare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("olio2024")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "olio2024"))
	assert.ErrorIs(t, h.Compare(hash, "olio2025"), domain.ErrInvalidCredentials)
	assert.Error(t, h.Compare("not-a-hash", "olio2024"))
}
