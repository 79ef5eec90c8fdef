package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	appidentity "github.com/Zhima-Mochi/minishop-modules/internal/application/identity"
	domidentity "github.com/Zhima-Mochi/minishop-modules/internal/domain/identity"
)

var _ appidentity.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions under session:<token> and lets Redis expire
// them at ExpiresAt.
type SessionStore struct {
	kv    KV
	clock clockwork.Clock
}

func NewSessionStore(kv KV, clock clockwork.Clock) *SessionStore {
	return &SessionStore{kv: kv, clock: clock}
}

func sessionKey(token string) string { return "session:" + token }

func (s *SessionStore) Save(ctx context.Context, session domidentity.Session) error {
	ttl := session.TTL(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey(session.Token), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, token string) (domidentity.Session, error) {
	data, err := s.kv.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domidentity.Session{}, domidentity.ErrSessionNotFound
	}
	if err != nil {
		return domidentity.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	var session domidentity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domidentity.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Expired(s.clock.Now()) {
		return domidentity.Session{}, domidentity.ErrSessionNotFound
	}
	return session, nil
}
