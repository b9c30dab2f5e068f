package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Event is a named calendar entry. Identity for lookup and deletion is the
// (Name, Date) pair, with Name compared case-insensitively.
type Event struct {
	Name string
	Date string
	Time string
}

// NewEvent validates and builds an event. Date must be an ISO calendar date
// and Time a 24-hour HH:MM value.
func NewEvent(name, date, hour string) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrEmptyEventName
	}
	if err := ValidateDate(date); err != nil {
		return Event{}, err
	}
	if err := ValidateTime(hour); err != nil {
		return Event{}, err
	}

	return Event{Name: name, Date: date, Time: hour}, nil
}

func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

func ValidateTime(hour string) error {
	if !timePattern.MatchString(hour) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, hour)
	}
	return nil
}

// Matches reports whether the event is identified by the given name and date.
func (e Event) Matches(name, date string) bool {
	return e.Date == date && strings.EqualFold(e.Name, name)
}
