package ports

import (
	"context"

	"github.com/bnema/agenda-assistant-cli/internal/domain"
)

// EventRepository is the outbound port to the durable event store.
// Delete returns domain.ErrEventNotFound when no (name, date) entry exists;
// Export returns domain.ErrEmptyAgenda when there is nothing to write.
type EventRepository interface {
	Save(ctx context.Context, event domain.Event) error
	FindByDate(ctx context.Context, date string) ([]domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, name, date string) error
	DeleteAll(ctx context.Context) error
	Export(ctx context.Context, path string) error
}
