package customers

import "errors"

var (
	// ErrMissingName is returned when the name is absent on the creation path
	ErrMissingName = errors.New("customer name is required")

	// ErrMissingPhone is returned when the phone is absent on the creation path
	ErrMissingPhone = errors.New("phone number is required")

	// ErrCustomerNotFound is returned when no customer matches the lookup
	ErrCustomerNotFound = errors.New("customer not found")
)
