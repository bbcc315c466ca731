package services

import (
	"context"
	"log/slog"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
	"github.com/kichoapp/kicho_backend/internal/middleware"
)

// loggingEventDispatcher publishes domain events to the structured log. A
// broker-backed dispatcher can replace it behind the same port without
// touching the services that emit events.
type loggingEventDispatcher struct{}

// NewLoggingEventDispatcher creates the default event dispatcher.
func NewLoggingEventDispatcher() portssvc.EventDispatcher {
	return &loggingEventDispatcher{}
}

var _ portssvc.EventDispatcher = (*loggingEventDispatcher)(nil)

func (d *loggingEventDispatcher) Dispatch(ctx context.Context, events ...domain.DomainEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, event := range events {
		logger.Info("Domain event",
			slog.String("event_name", event.EventName()),
			slog.String("event_id", event.GetEventID()),
			slog.Time("occurred_at", event.GetOccurredAt()),
		)
	}
}
