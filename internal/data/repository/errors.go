package repository

import "errors"

var (
	// ErrAlreadyPaid is returned when a capture is recorded twice for the
	// same reservation. The guarded update keeps the first capture.
	ErrAlreadyPaid = errors.New("reservation already paid")

	ErrNotFound = errors.New("record not found")
)
