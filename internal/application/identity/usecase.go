package identity

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/identity"
)

const UseCaseLogin = "identity.login"

type LoginUseCase = application.UseCase[LoginCommand, SessionDto]

type Login struct {
	verifier CredentialVerifier
	sessions SessionStore
	tokens   TokenGenerator
	clock    clockwork.Clock
	ttl      time.Duration
}

func NewLogin(verifier CredentialVerifier, sessions SessionStore, tokens TokenGenerator, clock clockwork.Clock, ttl time.Duration) *Login {
	return &Login{verifier: verifier, sessions: sessions, tokens: tokens, clock: clock, ttl: ttl}
}

func (uc *Login) Execute(ctx context.Context, cmd LoginCommand) (SessionDto, error) {
	userID, err := uc.verifier.Verify(ctx, cmd.Email(), cmd.Password())
	if err != nil {
		return SessionDto{}, failure.FromPort(failure.ModuleIdentity, "verify credentials", err)
	}

	s := domain.NewSession(userID, uc.tokens.NewToken(), cmd.DeviceID(), uc.clock.Now(), uc.ttl)
	if err := uc.sessions.Save(ctx, s); err != nil {
		return SessionDto{}, failure.FromPort(failure.ModuleIdentity, "save session", err)
	}
	return toDto(s), nil
}
