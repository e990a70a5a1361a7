package entity

import "errors"

var (
	// ErrDuplicateEmail is returned when creating a user with an email that
	// is already registered.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidPeriod is returned for a generation period outside [1,1440]
	// minutes.
	ErrInvalidPeriod = errors.New("generation period must be between 1 and 1440 minutes")

	// ErrInvalidTokenCost is returned for a negative token cost rate.
	ErrInvalidTokenCost = errors.New("token cost must not be negative")

	// ErrNotFound is returned by write/update paths targeting an entity that
	// does not exist. Read paths report absence with a nil entity instead.
	ErrNotFound = errors.New("entity not found")
)
