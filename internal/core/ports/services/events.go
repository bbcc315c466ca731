package services

import (
	"context"

	"github.com/kichoapp/kicho_backend/internal/core/domain"
)

// EventDispatcher receives the domain events returned by aggregate commands
// after the corresponding state has been persisted. Dispatch must not fail
// the calling operation; implementations log or forward events best-effort.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...domain.DomainEvent)
}
