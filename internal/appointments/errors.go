package appointments

import "errors"

var (
	// ErrMissingFields is returned when the booking payload lacks a required field
	ErrMissingFields = errors.New("name, phone, source and at least one service are required")

	// ErrAppointmentNotFound is returned when an appointment id does not resolve
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrEmployeeUnassigned is returned when a service line has no employee
	// while other lines in the same booking carry explicit assignments
	ErrEmployeeUnassigned = errors.New("employee not specified for service line")

	// ErrInvalidRange is returned for an unknown range keyword or a malformed
	// custom date window on a listing request
	ErrInvalidRange = errors.New("invalid range: expected today, week, month or a date_start/date_end pair")
)
