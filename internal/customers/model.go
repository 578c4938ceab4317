package customers

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Customer is long-lived reference data, deduplicated by normalized phone.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Gender    string     `json:"gender"`
	DOB       *time.Time `json:"dob,omitempty"`
	Address   string     `json:"address"`
	Note      string     `json:"note"`
	Source    string     `json:"source"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ResolveRequest is the contact info arriving with a booking. Resolve either
// creates a customer or backfills an existing one matched by phone.
type ResolveRequest struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email"`
	Gender  string     `json:"gender"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address string     `json:"address"`
	Note    string     `json:"note"`
	Source  string     `json:"source"`
}

// Validate checks the creation-path requirements.
func (r *ResolveRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	if NormalizePhone(r.Phone) == "" {
		return ErrMissingPhone
	}
	return nil
}

// FieldEdit carries explicit customer edits from the appointment-update path.
// Nil fields are left untouched; non-nil fields overwrite.
type FieldEdit struct {
	Name    *string
	Email   *string
	Phone   *string
	Gender  *string
	DOB     *time.Time
	Address *string
	Note    *string
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizePhone strips all whitespace so "98 765 43" and "9876543" key the
// same customer.
func NormalizePhone(phone string) string {
	return whitespace.ReplaceAllString(phone, "")
}
