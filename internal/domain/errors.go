package domain

import "errors"

var (
	// ErrNotFound is returned when a record ID does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidDate is returned for dates not in "2006-01-02" form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidAmount is returned for non-positive amounts or counts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidImport is returned when an import payload fails
	// validation. Nothing has been reset when this is returned.
	ErrInvalidImport = errors.New("invalid import payload")
)
