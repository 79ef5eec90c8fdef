package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appidentity "github.com/Zhima-Mochi/minishop-modules/internal/application/identity"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/memory"
)

var start = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fixedToken string

func (f fixedToken) NewToken() string { return string(f) }

func TestNewLoginCommand_RoundTrip(t *testing.T) {
	cmd, err := appidentity.NewLoginCommand(appidentity.LoginParams{
		Email: "a@b.com", Password: "x", DeviceID: "d1",
	})
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", cmd.Email())
	assert.Equal(t, "x", cmd.Password())
	assert.Equal(t, "d1", cmd.DeviceID())
	assert.NotContains(t, cmd.String(), "password")
}

func TestNewLoginCommand_Validation(t *testing.T) {
	_, err := appidentity.NewLoginCommand(appidentity.LoginParams{Email: "not-an-email", DeviceID: "d1"})

	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
	assert.Equal(t, failure.ModuleIdentity, failure.ModuleOf(err))
	assert.Contains(t, err.Error(), "email: email")
	assert.Contains(t, err.Error(), "password: required")
}

func newLogin(t *testing.T) (*appidentity.Login, *memory.SessionStore) {
	t.Helper()
	creds := memory.NewCredentialStore(bcrypt.MinCost)
	require.NoError(t, creds.Register("a@b.com", "x", "user-1"))
	sessions := memory.NewSessionStore()
	return appidentity.NewLogin(creds, sessions, fixedToken("tok-1"), clockwork.NewFakeClockAt(start), time.Hour), sessions
}

func TestLogin(t *testing.T) {
	uc, sessions := newLogin(t)
	cmd, _ := appidentity.NewLoginCommand(appidentity.LoginParams{Email: "A@b.com", Password: "x", DeviceID: "d1"})

	dto, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, appidentity.SessionDto{
		UserID: "user-1", Token: "tok-1", DeviceID: "d1",
		IssuedAt: start, ExpiresAt: start.Add(time.Hour),
	}, dto)

	stored, err := sessions.Find(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newLogin(t)
	cmd, _ := appidentity.NewLoginCommand(appidentity.LoginParams{Email: "a@b.com", Password: "y", DeviceID: "d1"})

	_, err := uc.Execute(context.Background(), cmd)

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, failure.Retryable(err))
}

type failingSessions struct{}

func (failingSessions) Save(context.Context, domain.Session) error { return errors.New("redis down") }
func (failingSessions) Find(context.Context, string) (domain.Session, error) {
	return domain.Session{}, domain.ErrSessionNotFound
}

func TestLogin_SessionStoreFailure(t *testing.T) {
	creds := memory.NewCredentialStore(bcrypt.MinCost)
	require.NoError(t, creds.Register("a@b.com", "x", "user-1"))
	uc := appidentity.NewLogin(creds, failingSessions{}, fixedToken("t"), clockwork.NewFakeClockAt(start), time.Hour)
	cmd, _ := appidentity.NewLoginCommand(appidentity.LoginParams{Email: "a@b.com", Password: "x", DeviceID: "d1"})

	_, err := uc.Execute(context.Background(), cmd)

	assert.Equal(t, failure.KindInfrastructure, failure.KindOf(err))
	assert.True(t, failure.Retryable(err))
}
