package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	appidentity "github.com/Zhima-Mochi/minishop-modules/internal/application/identity"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/identity"
)

var (
	_ appidentity.CredentialVerifier = (*CredentialStore)(nil)
	_ appidentity.SessionStore       = (*SessionStore)(nil)
)

type credential struct {
	userID string
	hash   []byte
}

// CredentialStore keeps bcrypt hashes keyed by lower-cased email.
type CredentialStore struct {
	mu    sync.RWMutex
	users map[string]credential
	cost  int
}

func NewCredentialStore(cost int) *CredentialStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{users: make(map[string]credential), cost: cost}
}

func (s *CredentialStore) Register(email, password, userID string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.users[key]; exists {
		return domain.ErrEmailTaken
	}
	s.users[key] = credential{userID: userID, hash: hash}
	return nil
}

func (s *CredentialStore) Verify(ctx context.Context, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	c, ok := s.users[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return c.userID, nil
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *SessionStore) Find(ctx context.Context, token string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}
