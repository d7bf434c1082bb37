package entity

import "errors"

var (
	// ErrResourceUnavailable means the requested slot conflicts with another
	// booking, a block, or the resource's working hours.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrInsufficientBalance means the wallet cannot cover the debit.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidState means the requested transition is not legal from the
	// booking's current status.
	ErrInvalidState = errors.New("invalid booking state")

	// ErrTooEarly means completion was requested before the booking's end time.
	ErrTooEarly = errors.New("booking has not ended yet")

	// ErrNotFound covers unknown bookings, wallets and members.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEvent marks a settlement replay. Callers absorb it silently.
	ErrDuplicateEvent = errors.New("duplicate settlement event")
)
