package employees

import (
	"time"

	"github.com/google/uuid"
)

// Employee is staff reference data, referenced by id from appointment
// service lines.
type Employee struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Gender    string     `json:"gender"`
	DOB       *time.Time `json:"dob,omitempty"`
	Address   string     `json:"address"`
	Status    bool       `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateEmployeeRequest is the request body for creating an employee.
type CreateEmployeeRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Gender  string     `json:"gender"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address string     `json:"address"`
}

// Validate checks required creation fields.
func (r *CreateEmployeeRequest) Validate() error {
	if r.Name == "" || r.Phone == "" {
		return ErrMissingFields
	}
	return nil
}

// UpdateEmployeeRequest carries partial edits; nil fields are untouched.
type UpdateEmployeeRequest struct {
	Name    *string    `json:"name,omitempty"`
	Phone   *string    `json:"phone,omitempty"`
	Gender  *string    `json:"gender,omitempty"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address *string    `json:"address,omitempty"`
	Status  *bool      `json:"status,omitempty"`
}
