package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
	StatusOnLeave = "leave"
)

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MarkRequest is the request body for marking attendance.
type MarkRequest struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Note       string    `json:"note"`
}

// Validate checks required fields and normalizes the date.
func (r *MarkRequest) Validate() error {
	if r.EmployeeID == uuid.Nil || r.Status == "" {
		return ErrMissingFields
	}
	if r.Date == "" {
		r.Date = time.Now().UTC().Format("2006-01-02")
		return nil
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// UpdateRequest carries partial edits to a record; nil fields are untouched.
type UpdateRequest struct {
	Status *string `json:"status,omitempty"`
	Note   *string `json:"note,omitempty"`
}
