package application

import (
	"context"
	"time"

	"github.com/bnema/agenda-assistant-cli/internal/domain"
	"github.com/bnema/agenda-assistant-cli/internal/ports"
)

// memRepo is an in-memory EventRepository with injectable failures.
type memRepo struct {
	events []domain.Event

	saveErr   error
	findErr   error
	deleteErr error
	exportErr error

	exportedPaths  []string
	deleteAllCalls int
}

var _ ports.EventRepository = (*memRepo)(nil)

func (r *memRepo) Save(_ context.Context, event domain.Event) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *memRepo) FindByDate(_ context.Context, date string) ([]domain.Event, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var found []domain.Event
	for _, event := range r.events {
		if event.Date == date {
			found = append(found, event)
		}
	}
	return found, nil
}

func (r *memRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return append([]domain.Event(nil), r.events...), nil
}

func (r *memRepo) Delete(_ context.Context, name, date string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	kept := r.events[:0]
	removed := false
	for _, event := range r.events {
		if event.Matches(name, date) {
			removed = true
			continue
		}
		kept = append(kept, event)
	}
	r.events = kept
	if !removed {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *memRepo) DeleteAll(_ context.Context) error {
	r.deleteAllCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.events = nil
	return nil
}

func (r *memRepo) Export(_ context.Context, path string) error {
	if r.exportErr != nil {
		return r.exportErr
	}
	if len(r.events) == 0 {
		return domain.ErrEmptyAgenda
	}
	r.exportedPaths = append(r.exportedPaths, path)
	return nil
}

// scriptClassifier replays canned action lines and records every context it
// was handed.
type scriptClassifier struct {
	replies []string
	err     error
	calls   []ports.ClassifierContext
}

var _ ports.Classifier = (*scriptClassifier)(nil)

func (c *scriptClassifier) Classify(_ context.Context, in ports.ClassifierContext) (string, error) {
	c.calls = append(c.calls, in)
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", nil
	}
	next := c.replies[0]
	c.replies = c.replies[1:]
	return next, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
