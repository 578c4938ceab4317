package payments

import "errors"

var (
	// ErrMissingFields is returned when a positive amount or payment mode is absent
	ErrMissingFields = errors.New("a positive amount and payment_mode are required")

	// ErrPaymentNotFound is returned when a payment id does not resolve
	ErrPaymentNotFound = errors.New("payment not found")
)
