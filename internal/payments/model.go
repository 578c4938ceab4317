package payments

import (
	"time"

	"github.com/google/uuid"
)

// Payment origins. Booking payments are generated by the appointment flow
// and are unique per appointment; manual payments are entered at the desk.
const (
	OriginBooking = "booking"
	OriginManual  = "manual"
)

// Payment is a recorded payment, either generated by a booking or entered
// manually.
type Payment struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	Amount        float64    `json:"amount"`
	PaymentMode   string     `json:"payment_mode"`
	Origin        string     `json:"origin"`
	Date          time.Time  `json:"date"`
	Note          string     `json:"note"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreatePaymentRequest is the request body for a manual payment entry.
type CreatePaymentRequest struct {
	CustomerID  *uuid.UUID `json:"customer_id,omitempty"`
	Amount      float64    `json:"amount"`
	PaymentMode string     `json:"payment_mode"`
	Date        *time.Time `json:"date,omitempty"`
	Note        string     `json:"note"`
}

// Validate checks required manual-entry fields.
func (r *CreatePaymentRequest) Validate() error {
	if r.Amount <= 0 || r.PaymentMode == "" {
		return ErrMissingFields
	}
	return nil
}

// UpdatePaymentRequest carries partial edits; nil fields are untouched.
type UpdatePaymentRequest struct {
	Amount      *float64   `json:"amount,omitempty"`
	PaymentMode *string    `json:"payment_mode,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Note        *string    `json:"note,omitempty"`
}
