package application

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/bnema/agenda-assistant-cli/internal/domain"
	"github.com/bnema/agenda-assistant-cli/internal/ports"
)

// DefaultExportPath is where ExportAgenda writes when no path is given.
const DefaultExportPath = "agenda_export.csv"

// AgendaService implements the agenda use cases. Every public method is total
// from the caller's point of view: it always returns a human-readable outcome
// string and never propagates an error, because it sits directly behind a
// chat interface with no structured error channel.
type AgendaService struct {
	repo ports.EventRepository
}

func NewAgendaService(repo ports.EventRepository) *AgendaService {
	return &AgendaService{repo: repo}
}

// CreateEvent validates a (name, date, time) triple and persists it. Inputs
// are trimmed and HTML-escaped in case they are ever rendered as markup.
func (s *AgendaService) CreateEvent(ctx context.Context, name, date, hour string) string {
	name = html.EscapeString(strings.TrimSpace(name))
	date = html.EscapeString(strings.TrimSpace(date))
	hour = html.EscapeString(strings.TrimSpace(hour))

	event, err := domain.NewEvent(name, date, hour)
	if err != nil {
		return validationMessage(err, date, hour)
	}

	if err := s.repo.Save(ctx, event); err != nil {
		return "Error al guardar el evento"
	}

	return fmt.Sprintf("Evento '%s' agregado para %s a las %s", event.Name, event.Date, event.Time)
}

// GetEventsByDate lists the events of one day in storage order.
func (s *AgendaService) GetEventsByDate(ctx context.Context, date string) string {
	if err := domain.ValidateDate(date); err != nil {
		return validationMessage(err, date, "")
	}

	events, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return "Error al consultar los eventos"
	}

	if len(events) == 0 {
		return fmt.Sprintf("No hay eventos programados para %s", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Eventos para %s:", date)
	for _, event := range events {
		fmt.Fprintf(&b, "\n- %s a las %s", event.Name, event.Time)
	}

	return b.String()
}

// DeleteEvent removes one event. The existence pre-check runs locally against
// the day's events so a "not found" outcome stays distinguishable from a
// storage failure.
func (s *AgendaService) DeleteEvent(ctx context.Context, name, date string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationMessage(domain.ErrEmptyEventName, date, "")
	}
	if err := domain.ValidateDate(date); err != nil {
		return validationMessage(err, date, "")
	}

	exists, err := s.HasEvent(ctx, name, date)
	if err != nil {
		return "Error al eliminar el evento"
	}
	if !exists {
		return fmt.Sprintf("No se encontró el evento '%s' en la fecha %s", name, date)
	}

	if err := s.repo.Delete(ctx, name, date); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return fmt.Sprintf("No se encontró el evento '%s' en la fecha %s", name, date)
		}
		return "Error al eliminar el evento"
	}

	return fmt.Sprintf("Evento '%s' eliminado de %s", name, date)
}

// GetAllEvents lists the whole agenda.
func (s *AgendaService) GetAllEvents(ctx context.Context) string {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return "Error al consultar los eventos"
	}

	if len(events) == 0 {
		return "No hay eventos en la agenda"
	}

	var b strings.Builder
	b.WriteString("Todos los eventos:")
	for _, event := range events {
		fmt.Fprintf(&b, "\n- %s el %s a las %s", event.Name, event.Date, event.Time)
	}

	return b.String()
}

// DeleteAllEvents empties the agenda. An already-empty agenda is a no-op
// success and never reaches the store's delete.
func (s *AgendaService) DeleteAllEvents(ctx context.Context) string {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return "Error al eliminar los eventos"
	}
	if empty {
		return "No hay eventos para eliminar"
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return "Error al eliminar los eventos"
	}

	return "Todos los eventos han sido eliminados"
}

// ExportAgenda writes the agenda to path, defaulting to DefaultExportPath in
// the working directory. Nothing-to-export is a negative outcome, not an
// error.
func (s *AgendaService) ExportAgenda(ctx context.Context, path string) string {
	if strings.TrimSpace(path) == "" {
		path = DefaultExportPath
	}

	if err := s.repo.Export(ctx, path); err != nil {
		if errors.Is(err, domain.ErrEmptyAgenda) {
			return "No hay eventos para exportar"
		}
		return "Error al exportar la agenda"
	}

	return fmt.Sprintf("Agenda exportada a %s", path)
}

// HasEvent reports whether an event identified by (name, date) exists,
// comparing names case-insensitively.
func (s *AgendaService) HasEvent(ctx context.Context, name, date string) (bool, error) {
	events, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("find events by date: %w", err)
	}

	for _, event := range events {
		if event.Matches(name, date) {
			return true, nil
		}
	}

	return false, nil
}

// IsEmpty reports whether the agenda has no events at all.
func (s *AgendaService) IsEmpty(ctx context.Context) (bool, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("find all events: %w", err)
	}

	return len(events) == 0, nil
}

func validationMessage(err error, date, hour string) string {
	switch {
	case errors.Is(err, domain.ErrEmptyEventName):
		return "Error de validación: el nombre del evento no puede estar vacío"
	case errors.Is(err, domain.ErrInvalidDate):
		return fmt.Sprintf("Error de validación: la fecha '%s' no es válida. Usa formato YYYY-MM-DD", date)
	case errors.Is(err, domain.ErrInvalidTime):
		return fmt.Sprintf("Error de validación: la hora '%s' no es válida. Usa formato HH:MM", hour)
	default:
		return "Error de validación"
	}
}
