package notification

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/notification"
)

type NotificationResultDto struct {
	NotificationID string         `json:"notification_id"`
	Channel        domain.Channel `json:"channel"`
	Status         domain.Status  `json:"status"`
	SentAt         time.Time      `json:"sent_at"`
}
