package identity

import (
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

var (
	ErrInvalidCredentials = failure.Domain(failure.ModuleIdentity, "invalid email or password")
	ErrSessionNotFound    = failure.NotFound(failure.ModuleIdentity, "session not found")
	ErrEmailTaken         = failure.Conflict(failure.ModuleIdentity, "email already registered")
)

// NewDomainError builds an identity rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModuleIdentity, msg)
}

// Session is an issued login bound to one device.
type Session struct {
	UserID    string
	Token     string
	DeviceID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func NewSession(userID, token, deviceID string, now time.Time, ttl time.Duration) Session {
	now = now.UTC()
	return Session{
		UserID:    userID,
		Token:     token,
		DeviceID:  deviceID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// TTL is the remaining lifetime at now, never negative.
func (s Session) TTL(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
