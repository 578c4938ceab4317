package catalog

import "errors"

var (
	// ErrMissingName is returned when the service name is absent
	ErrMissingName = errors.New("service name is required")

	// ErrMissingSubServices is returned when no sub-services are supplied
	ErrMissingSubServices = errors.New("sub_services array is required with at least one item")

	// ErrServiceNotFound is returned when a service id does not resolve
	ErrServiceNotFound = errors.New("service not found")
)
