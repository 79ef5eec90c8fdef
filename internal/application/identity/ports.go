package identity

import (
	"context"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/identity"
)

// CredentialVerifier checks an email/password pair and returns the user id.
// It returns domain.ErrInvalidCredentials for unknown users and wrong
// passwords alike.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (userID string, err error)
}

// SessionStore keeps issued sessions until they expire.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session) error
	Find(ctx context.Context, token string) (domain.Session, error)
}

type TokenGenerator interface {
	NewToken() string
}
