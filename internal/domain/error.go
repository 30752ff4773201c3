package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrAlreadyExists     = errors.New("entity already exists")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDateParse         = errors.New("birth date does not match an accepted format")
	ErrProfileIncomplete = errors.New("profile has no birth data yet")
	ErrNoHoroscope       = errors.New("no horoscope available")
)
