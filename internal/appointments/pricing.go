package appointments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/internal/catalog"
	"github.com/GovindxSharma/bookmyglow/internal/employees"
)

// ServiceCatalog is the read-only catalog view the booking flow needs.
type ServiceCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
}

// EmployeeDirectory is the read-only staff view the booking flow needs.
type EmployeeDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*employees.Employee, error)
}

// PricingEngine resolves requested service lines against the catalog and the
// staff directory, producing stored lines plus a computed total.
type PricingEngine struct {
	catalog ServiceCatalog
	staff   EmployeeDirectory
}

// NewPricingEngine returns a pricing engine over the given lookups.
func NewPricingEngine(cat ServiceCatalog, staff EmployeeDirectory) *PricingEngine {
	return &PricingEngine{catalog: cat, staff: staff}
}

// Price validates and prices the lines of a new booking. The fallback
// employee is applied to any line without its own assignment. If a line ends
// up unassigned while another line carries an explicit assignment, the whole
// batch is rejected; a booking where no line names an employee is allowed.
func (e *PricingEngine) Price(ctx context.Context, lines []ServiceLineRequest, fallback *uuid.UUID) ([]PricedLine, float64, error) {
	anyExplicit := false
	for i := range lines {
		if lines[i].EmployeeID != nil {
			anyExplicit = true
			break
		}
	}

	priced := make([]PricedLine, 0, len(lines))
	var total float64
	for i := range lines {
		line := &lines[i]

		empID := line.EmployeeID
		if empID == nil {
			empID = fallback
		}
		if empID == nil && anyExplicit {
			return nil, 0, fmt.Errorf("%w: service %s", ErrEmployeeUnassigned, line.ServiceID)
		}

		pl, err := e.resolveLine(ctx, line, empID)
		if err != nil {
			return nil, 0, err
		}
		total += pl.Price
		priced = append(priced, *pl)
	}
	return priced, total, nil
}

// PriceReplacement validates and prices the replacement line list of an
// update. Lines keep whatever assignment the payload gives them; missing
// assignments are not an error here.
func (e *PricingEngine) PriceReplacement(ctx context.Context, lines []ServiceLineRequest) ([]PricedLine, float64, error) {
	priced := make([]PricedLine, 0, len(lines))
	var total float64
	for i := range lines {
		pl, err := e.resolveLine(ctx, &lines[i], lines[i].EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		total += pl.Price
		priced = append(priced, *pl)
	}
	return priced, total, nil
}

func (e *PricingEngine) resolveLine(ctx context.Context, line *ServiceLineRequest, empID *uuid.UUID) (*PricedLine, error) {
	svc, err := e.catalog.GetByID(ctx, line.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, line.ServiceID)
	}

	pl := &PricedLine{
		ServiceLine: ServiceLine{
			ServiceID:    line.ServiceID,
			SubServiceID: line.SubServiceID,
			EmployeeID:   empID,
		},
		ServiceName: svc.Name,
	}

	// Price resolution order: request override, sub-service price, service
	// base price, zero.
	switch {
	case line.Price != nil:
		pl.Price = *line.Price
	case line.SubServiceID != nil:
		if sub, ok := svc.SubServiceByID(*line.SubServiceID); ok {
			pl.Price = sub.Price
		} else if svc.BasePrice != nil {
			pl.Price = *svc.BasePrice
		}
	case svc.BasePrice != nil:
		pl.Price = *svc.BasePrice
	}

	// Duration: request override, service duration, placeholder.
	switch {
	case line.Duration != nil:
		pl.Duration = *line.Duration
	case svc.Duration != "":
		pl.Duration = svc.Duration
	default:
		pl.Duration = "0 min"
	}

	if empID != nil {
		emp, err := e.staff.GetByID(ctx, *empID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, *empID)
		}
		pl.EmployeeName = emp.Name
		pl.EmployeePhone = emp.Phone
	}
	return pl, nil
}
