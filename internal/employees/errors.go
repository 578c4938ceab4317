package employees

import "errors"

var (
	// ErrMissingFields is returned when name or phone is absent
	ErrMissingFields = errors.New("name and phone are required")

	// ErrDuplicatePhone is returned when an employee with the phone exists
	ErrDuplicatePhone = errors.New("employee with this phone already exists")

	// ErrEmployeeNotFound is returned when an employee id does not resolve
	ErrEmployeeNotFound = errors.New("employee not found")
)
