package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/internal/customers"
	"github.com/GovindxSharma/bookmyglow/internal/observability/metrics"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// PaymentLedger records the payment generated by a booking. RecordBooking
// must be idempotent per appointment: concurrent or repeated calls for the
// same appointment yield a single record, and created reports whether this
// call wrote it.
type PaymentLedger interface {
	RecordBooking(ctx context.Context, appointmentID, customerID uuid.UUID, amount float64, mode string, at time.Time) (created bool, err error)
}

// BookingService drives the appointment lifecycle: customer resolution,
// line pricing, persistence and payment generation.
type BookingService struct {
	store    Store
	resolver *customers.Resolver
	contacts customers.Store
	pricing  *PricingEngine
	ledger   PaymentLedger
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
	now      func() time.Time
}

// NewBookingService wires the booking flow. ledger and m may be nil when
// payments or metrics are not in play (tests, partial deployments).
func NewBookingService(store Store, resolver *customers.Resolver, contacts customers.Store, pricing *PricingEngine, ledger PaymentLedger, m *metrics.BookingMetrics, logger *logging.Logger) *BookingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingService{
		store:    store,
		resolver: resolver,
		contacts: contacts,
		pricing:  pricing,
		ledger:   ledger,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create books an appointment: resolves the customer by phone, prices the
// service lines, persists the appointment and, when both a positive amount
// and a payment mode are present, records the matching payment. A payment
// write failure after the appointment committed is surfaced but does not
// roll the appointment back.
func (s *BookingService) Create(ctx context.Context, req *CreateAppointmentRequest) (*BookingConfirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.resolver.Resolve(ctx, &customers.ResolveRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Gender:  req.Gender,
		DOB:     req.DOB,
		Address: req.Address,
		Note:    req.Note,
		Source:  req.Source,
	})
	if err != nil {
		return nil, err
	}

	priced, total, err := s.pricing.Price(ctx, req.Services, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	amount := total
	if req.Amount != nil && *req.Amount > 0 {
		amount = *req.Amount
	}

	paymentStatus := PaymentPending
	if req.PaymentMode != "" {
		paymentStatus = PaymentCompleted
	}

	confirmed := req.Source == SourceWalkIn
	if req.ConfirmationStatus != nil {
		confirmed = *req.ConfirmationStatus
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	appt := &Appointment{
		ID:                 uuid.New(),
		CustomerID:         customer.ID,
		Services:           storedLines(priced),
		Date:               date,
		AppointmentTime:    req.AppointmentTime,
		ConfirmationStatus: confirmed,
		Amount:             amount,
		PaymentStatus:      paymentStatus,
		PaymentMode:        req.PaymentMode,
		Note:               req.Note,
		Source:             req.Source,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.metrics.ObserveAppointment(appt.Source, appt.PaymentStatus, appt.Amount)
	s.logger.Info("appointment created",
		"appointment_id", appt.ID,
		"customer_id", customer.ID,
		"source", appt.Source,
		"amount", appt.Amount,
		"services", len(appt.Services))

	if err := s.recordPayment(ctx, appt); err != nil {
		return nil, err
	}

	return &BookingConfirmation{Appointment: appt, Customer: customer, Services: priced}, nil
}

// Update applies partial edits: customer contact fields go to the linked
// customer record, appointment scalars are overwritten when supplied, and a
// non-nil Services list replaces the stored lines after re-validation.
// Supplying both a positive amount and a payment mode marks the appointment
// completed and records the payment, idempotently.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, req *UpdateAppointmentRequest) (*Appointment, error) {
	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	edit := customers.FieldEdit{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Gender:  req.Gender,
		DOB:     req.DOB,
		Address: req.Address,
		Note:    req.Note,
	}
	if edit != (customers.FieldEdit{}) {
		if _, err := s.contacts.ApplyEdit(ctx, appt.CustomerID, edit); err != nil {
			return nil, err
		}
	}

	if req.Date != nil {
		appt.Date = *req.Date
	}
	if req.AppointmentTime != nil {
		appt.AppointmentTime = *req.AppointmentTime
	}
	if req.ConfirmationStatus != nil {
		appt.ConfirmationStatus = *req.ConfirmationStatus
	}
	if req.Note != nil {
		appt.Note = *req.Note
	}
	if req.Source != nil {
		appt.Source = *req.Source
	}
	if req.PaymentStatus != nil {
		appt.PaymentStatus = *req.PaymentStatus
	}
	if req.Rating != nil {
		appt.Rating = *req.Rating
	}
	if req.Feedback != nil {
		appt.Feedback = *req.Feedback
	}
	if req.Amount != nil {
		appt.Amount = *req.Amount
	}
	if req.PaymentMode != nil {
		appt.PaymentMode = *req.PaymentMode
	}

	if req.Services != nil {
		priced, _, err := s.pricing.PriceReplacement(ctx, req.Services)
		if err != nil {
			return nil, err
		}
		appt.Services = storedLines(priced)
	}

	settle := req.Amount != nil && *req.Amount > 0 && req.PaymentMode != nil && *req.PaymentMode != ""
	if settle {
		appt.PaymentStatus = PaymentCompleted
	}

	appt.UpdatedAt = s.now()
	if err := s.store.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment updated", "appointment_id", appt.ID)

	if settle {
		if err := s.recordPayment(ctx, appt); err != nil {
			return nil, err
		}
	}
	return appt, nil
}

// Get returns a single appointment.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.store.GetByID(ctx, id)
}

// Delete removes an appointment. Payments already recorded for it are kept.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", "appointment_id", id)
	return nil
}

// List returns appointments matching the filter, newest first.
func (s *BookingService) List(ctx context.Context, filter ListFilter) ([]*Appointment, error) {
	return s.store.List(ctx, filter)
}

// Now exposes the service clock so listings can build keyword windows
// against the same reference tests inject.
func (s *BookingService) Now() time.Time {
	return s.now()
}

// WithClock overrides the service clock. Test hook.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

func (s *BookingService) recordPayment(ctx context.Context, appt *Appointment) error {
	if s.ledger == nil || appt.Amount <= 0 || appt.PaymentMode == "" {
		return nil
	}
	created, err := s.ledger.RecordBooking(ctx, appt.ID, appt.CustomerID, appt.Amount, appt.PaymentMode, appt.Date)
	if err != nil {
		s.logger.Error("payment record failed", "appointment_id", appt.ID, "error", err)
		return err
	}
	if created {
		s.metrics.ObservePayment(appt.PaymentMode, "booking")
		s.logger.Info("payment recorded", "appointment_id", appt.ID, "amount", appt.Amount, "mode", appt.PaymentMode)
	}
	return nil
}

func storedLines(priced []PricedLine) []ServiceLine {
	lines := make([]ServiceLine, len(priced))
	for i := range priced {
		lines[i] = priced[i].ServiceLine
	}
	return lines
}
