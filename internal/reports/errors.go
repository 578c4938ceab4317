package reports

import "errors"

var (
	// ErrNoEarnings is returned when an employee has no service lines in the window
	ErrNoEarnings = errors.New("no earnings found for this employee on that date")

	// ErrInvalidWindow is returned when a report window is missing or malformed
	ErrInvalidWindow = errors.New("invalid report window, expected YYYY-MM-DD dates")
)
