package domain

import "errors"

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEmptyAgenda    = errors.New("agenda is empty")
	ErrEmptyEventName = errors.New("event name is empty")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidTime    = errors.New("invalid time")
)
