package attendance

import "errors"

var (
	// ErrMissingFields is returned when employee_id or status is absent
	ErrMissingFields = errors.New("employee_id and status are required")

	// ErrInvalidDate is returned when the date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrAlreadyMarked is returned when the employee already has a record for the day
	ErrAlreadyMarked = errors.New("attendance already marked for this employee and date")

	// ErrRecordNotFound is returned when a record id does not resolve
	ErrRecordNotFound = errors.New("attendance record not found")
)
