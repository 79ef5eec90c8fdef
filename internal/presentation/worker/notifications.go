// Package workerpresentation drives use cases from bus events instead of
// HTTP requests.
package workerpresentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	appnotification "github.com/Zhima-Mochi/minishop-modules/internal/application/notification"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	domlogistics "github.com/Zhima-Mochi/minishop-modules/internal/domain/logistics"
	domorder "github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

const componentNotificationWorker = "notification_worker"

// NotificationWorker tells customers about their shipments and cancelled
// orders through push notifications.
type NotificationWorker struct {
	send appnotification.SendNotificationUseCase
	tel  observability.Observability
}

func NewNotificationWorker(send appnotification.SendNotificationUseCase, tel observability.Observability) *NotificationWorker {
	return &NotificationWorker{send: send, tel: observability.OrNop(tel)}
}

func (w *NotificationWorker) Subscribe(sub event.Subscriber) {
	sub.Subscribe(domlogistics.ShipmentCreatedEventName, w.Handle)
	sub.Subscribe(domorder.OrderCancelledEvent{}.EventName(), w.Handle)
}

// Handle ignores events it has no message for.
func (w *NotificationWorker) Handle(ctx context.Context, e event.Event) error {
	var params appnotification.SendNotificationParams
	var ref string
	switch ev := e.(type) {
	case domlogistics.ShipmentCreatedEvent:
		ref = ev.ShipmentID
		params = appnotification.SendNotificationParams{
			RecipientID: ev.CustomerID,
			Channel:     "push",
			Body:        fmt.Sprintf("Order %s shipped with %s, tracking %s", ev.OrderID, ev.Carrier, ev.TrackingNo),
		}
	case domorder.OrderCancelledEvent:
		ref = ev.OrderID
		params = appnotification.SendNotificationParams{
			RecipientID: ev.CustomerID,
			Channel:     "push",
			Body:        fmt.Sprintf("Order %s was cancelled: %s", ev.OrderID, ev.Reason),
		}
	default:
		return nil
	}

	ctx, span := w.tel.Tracer().Start(ctx, "Worker."+e.EventName(),
		attribute.String("component", componentNotificationWorker),
	)
	defer span.End()

	ctx = WithEventContext(ctx, logctx.FromOr(ctx, w.tel.Logger()), map[string]string{
		"event_id":  e.EventName() + ":" + ref,
		"component": componentNotificationWorker,
	})

	cmd, err := appnotification.NewSendNotificationCommand(params)
	if err != nil {
		return err
	}
	res, err := w.send.Execute(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		return err
	}
	logctx.FromOr(ctx, w.tel.Logger()).Debug("customer_notified",
		observability.F("notification_id", res.NotificationID),
	)
	return nil
}
