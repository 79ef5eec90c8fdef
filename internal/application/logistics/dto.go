package logistics

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/logistics"
)

type ShipmentDto struct {
	ShipmentID string        `json:"shipment_id"`
	OrderID    string        `json:"order_id"`
	CustomerID string        `json:"customer_id"`
	Carrier    string        `json:"carrier"`
	Status     domain.Status `json:"status"`
	Cost       string        `json:"cost"`
	Currency   string        `json:"currency"`
	TrackingNo string        `json:"tracking_no"`
	CreatedAt  time.Time     `json:"created_at"`
}

func toDto(s *domain.Shipment) ShipmentDto {
	return ShipmentDto{
		ShipmentID: s.ID,
		OrderID:    s.OrderID,
		CustomerID: s.CustomerID,
		Carrier:    s.Carrier,
		Status:     s.Status,
		Cost:       s.Cost.StringFixed(),
		Currency:   s.Cost.Currency(),
		TrackingNo: s.TrackingNo,
		CreatedAt:  s.CreatedAt,
	}
}
