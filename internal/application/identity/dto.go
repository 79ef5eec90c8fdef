package identity

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/identity"
)

type SessionDto struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	DeviceID  string    `json:"device_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toDto(s domain.Session) SessionDto {
	return SessionDto{
		UserID:    s.UserID,
		Token:     s.Token,
		DeviceID:  s.DeviceID,
		IssuedAt:  s.IssuedAt,
		ExpiresAt: s.ExpiresAt,
	}
}
