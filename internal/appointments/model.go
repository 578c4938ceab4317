package appointments

import (
	"time"

	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/internal/customers"
)

// Payment status values carried on the appointment.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

// Entry channels.
const (
	SourceOnline = "online"
	SourceWalkIn = "walk-in"
)

// ServiceLine is one priced, optionally staff-assigned item within an
// appointment's service list.
type ServiceLine struct {
	ServiceID    uuid.UUID  `json:"service_id"`
	SubServiceID *uuid.UUID `json:"sub_service_id,omitempty"`
	EmployeeID   *uuid.UUID `json:"employee_id,omitempty"`
	Price        float64    `json:"price"`
	Duration     string     `json:"duration"`
}

// Appointment binds customer, service lines, schedule and payment state.
type Appointment struct {
	ID                 uuid.UUID     `json:"id"`
	CustomerID         uuid.UUID     `json:"customer_id"`
	Services           []ServiceLine `json:"services"`
	Date               time.Time     `json:"date"`
	AppointmentTime    string        `json:"appointment_time"`
	ConfirmationStatus bool          `json:"confirmation_status"`
	Rating             string        `json:"rating"`
	Feedback           string        `json:"feedback"`
	Amount             float64       `json:"amount"`
	PaymentStatus      string        `json:"payment_status"`
	PaymentMode        string        `json:"payment_mode"`
	Note               string        `json:"note"`
	Source             string        `json:"source"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// ServiceLineRequest is one requested service line in a booking payload.
// Price and Duration are overrides; absent values resolve from the catalog.
type ServiceLineRequest struct {
	ServiceID    uuid.UUID  `json:"service_id"`
	SubServiceID *uuid.UUID `json:"sub_service_id,omitempty"`
	EmployeeID   *uuid.UUID `json:"employee_id,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Duration     *string    `json:"duration,omitempty"`
}

// CreateAppointmentRequest is the booking payload. Customer contact fields
// feed the resolver; EmployeeID is the booking-level fallback applied to
// lines lacking their own assignment.
type CreateAppointmentRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email"`
	Gender  string     `json:"gender"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address string     `json:"address"`
	Note    string     `json:"note"`

	Source     string               `json:"source"`
	Services   []ServiceLineRequest `json:"services"`
	EmployeeID *uuid.UUID           `json:"employee_id,omitempty"`

	Date            time.Time `json:"date"`
	AppointmentTime string    `json:"appointment_time"`

	Amount             *float64 `json:"amount,omitempty"`
	PaymentMode        string   `json:"payment_mode"`
	ConfirmationStatus *bool    `json:"confirmation_status,omitempty"`
}

// Validate checks the minimum booking requirements.
func (r *CreateAppointmentRequest) Validate() error {
	if r.Name == "" || customers.NormalizePhone(r.Phone) == "" || r.Source == "" || len(r.Services) == 0 {
		return ErrMissingFields
	}
	return nil
}

// UpdateAppointmentRequest carries partial edits. Nil fields are untouched;
// a non-nil Services list wholesale-replaces the existing line list.
type UpdateAppointmentRequest struct {
	// Customer edits, applied to the linked customer record.
	Name    *string    `json:"name,omitempty"`
	Email   *string    `json:"email,omitempty"`
	Phone   *string    `json:"phone,omitempty"`
	Gender  *string    `json:"gender,omitempty"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address *string    `json:"address,omitempty"`

	Date               *time.Time `json:"date,omitempty"`
	AppointmentTime    *string    `json:"appointment_time,omitempty"`
	ConfirmationStatus *bool      `json:"confirmation_status,omitempty"`
	Note               *string    `json:"note,omitempty"`
	Source             *string    `json:"source,omitempty"`
	PaymentStatus      *string    `json:"payment_status,omitempty"`
	Rating             *string    `json:"rating,omitempty"`
	Feedback           *string    `json:"feedback,omitempty"`

	Amount      *float64 `json:"amount,omitempty"`
	PaymentMode *string  `json:"payment_mode,omitempty"`

	Services []ServiceLineRequest `json:"services,omitempty"`
}

// PricedLine is a validated service line plus display fields resolved from
// the catalog and staff directory. Display fields are for responses only,
// never stored.
type PricedLine struct {
	ServiceLine
	ServiceName   string `json:"service_name,omitempty"`
	EmployeeName  string `json:"employee_name,omitempty"`
	EmployeePhone string `json:"employee_phone,omitempty"`
}

// BookingConfirmation is the display-ready create response.
type BookingConfirmation struct {
	Appointment *Appointment        `json:"appointment"`
	Customer    *customers.Customer `json:"customer"`
	Services    []PricedLine        `json:"services"`
}
