package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SubService is a priced variant within a service (e.g. "Hair Spa - Long").
type SubService struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

// Service is a catalog entry referenced read-only by the booking flow.
type Service struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Discount    float64      `json:"discount"`
	BasePrice   *float64     `json:"base_price,omitempty"`
	Status      bool         `json:"status"`
	SubServices []SubService `json:"sub_services"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SubServiceByID looks up a priced sub-service within the service.
func (s *Service) SubServiceByID(id uuid.UUID) (*SubService, bool) {
	for i := range s.SubServices {
		if s.SubServices[i].ID == id {
			return &s.SubServices[i], true
		}
	}
	return nil, false
}

// SubServiceRequest is a sub-service in a create/update payload.
type SubServiceRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CreateServiceRequest is the request body for creating a service.
type CreateServiceRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Duration    string              `json:"duration"`
	BasePrice   *float64            `json:"base_price,omitempty"`
	SubServices []SubServiceRequest `json:"sub_services"`
}

// Validate checks required creation fields.
func (r *CreateServiceRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	if len(r.SubServices) == 0 {
		return ErrMissingSubServices
	}
	return nil
}

// UpdateServiceRequest carries partial edits; nil fields are untouched. A
// non-nil SubServices list wholesale-replaces the existing one.
type UpdateServiceRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Duration    *string             `json:"duration,omitempty"`
	Discount    *float64            `json:"discount,omitempty"`
	BasePrice   *float64            `json:"base_price,omitempty"`
	Status      *bool               `json:"status,omitempty"`
	SubServices []SubServiceRequest `json:"sub_services,omitempty"`
}
