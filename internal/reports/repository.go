package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EarningLine is one service line an employee delivered on a day.
type EarningLine struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	CustomerName  string    `json:"customer_name"`
	ServiceName   string    `json:"service_name"`
	Price         float64   `json:"price"`
	Duration      string    `json:"duration"`
}

// DayEarnings is an employee's earnings for one scheduled day.
type DayEarnings struct {
	EmployeeID   uuid.UUID     `json:"employee_id"`
	Date         string        `json:"date"`
	Total        float64       `json:"total"`
	Appointments int           `json:"appointments"`
	Lines        []EarningLine `json:"lines"`
}

// PerformanceRow is one appointment an employee served in a window.
type PerformanceRow struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	CustomerName  string    `json:"customer_name"`
	ServiceName   string    `json:"service_name"`
	Price         float64   `json:"price"`
	Date          time.Time `json:"date"`
}

// Performance summarizes an employee's work across a creation-time window.
type Performance struct {
	EmployeeID   uuid.UUID        `json:"employee_id"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	Total        float64          `json:"total"`
	Appointments int              `json:"appointments"`
	Rows         []PerformanceRow `json:"rows"`
}

// MonthBucket is the payment volume of one calendar month.
type MonthBucket struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Repository runs the reporting queries against Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a reports repository over a database handle.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EmployeeDayEarnings sums the service lines an employee delivered on the
// given scheduled day. An employee with no lines that day yields
// ErrNoEarnings.
func (r *Repository) EmployeeDayEarnings(ctx context.Context, employeeID uuid.UUID, day time.Time) (*DayEarnings, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, c.name, s.name, l.price, l.duration
		FROM appointment_services l
		JOIN appointments a ON a.id = l.appointment_id
		JOIN customers c ON c.id = a.customer_id
		JOIN services s ON s.id = l.service_id
		WHERE l.employee_id = $1 AND a.date >= $2 AND a.date < $3
		ORDER BY a.date ASC`,
		employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports: earnings query failed: %w", err)
	}
	defer rows.Close()

	earnings := &DayEarnings{
		EmployeeID: employeeID,
		Date:       start.Format("2006-01-02"),
	}
	seen := make(map[uuid.UUID]bool)
	for rows.Next() {
		var line EarningLine
		if err := rows.Scan(&line.AppointmentID, &line.CustomerName, &line.ServiceName, &line.Price, &line.Duration); err != nil {
			return nil, fmt.Errorf("reports: earnings scan failed: %w", err)
		}
		earnings.Total += line.Price
		if !seen[line.AppointmentID] {
			seen[line.AppointmentID] = true
			earnings.Appointments++
		}
		earnings.Lines = append(earnings.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports: earnings query failed: %w", err)
	}
	if len(earnings.Lines) == 0 {
		return nil, ErrNoEarnings
	}
	return earnings, nil
}

// EmployeePerformance lists the lines an employee served for appointments
// created within [start, end], end-inclusive through the whole end day.
func (r *Repository) EmployeePerformance(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (*Performance, error) {
	start = start.UTC()
	end = end.UTC()
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, c.name, s.name, l.price, a.date
		FROM appointment_services l
		JOIN appointments a ON a.id = l.appointment_id
		JOIN customers c ON c.id = a.customer_id
		JOIN services s ON s.id = l.service_id
		WHERE l.employee_id = $1 AND a.created_at >= $2 AND a.created_at < $3
		ORDER BY a.created_at DESC`,
		employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports: performance query failed: %w", err)
	}
	defer rows.Close()

	perf := &Performance{
		EmployeeID: employeeID,
		Start:      from.Format("2006-01-02"),
		End:        end.Format("2006-01-02"),
	}
	seen := make(map[uuid.UUID]bool)
	for rows.Next() {
		var row PerformanceRow
		if err := rows.Scan(&row.AppointmentID, &row.CustomerName, &row.ServiceName, &row.Price, &row.Date); err != nil {
			return nil, fmt.Errorf("reports: performance scan failed: %w", err)
		}
		perf.Total += row.Price
		if !seen[row.AppointmentID] {
			seen[row.AppointmentID] = true
			perf.Appointments++
		}
		perf.Rows = append(perf.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports: performance query failed: %w", err)
	}
	return perf, nil
}

// GroupedPayments buckets all payments by calendar month, oldest first.
func (r *Repository) GroupedPayments(ctx context.Context) ([]MonthBucket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0), COUNT(*)
		FROM payments
		GROUP BY month
		ORDER BY month ASC`)
	if err != nil {
		return nil, fmt.Errorf("reports: grouped payments query failed: %w", err)
	}
	defer rows.Close()

	var out []MonthBucket
	for rows.Next() {
		var b MonthBucket
		if err := rows.Scan(&b.Month, &b.Total, &b.Count); err != nil {
			return nil, fmt.Errorf("reports: grouped payments scan failed: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reports: grouped payments query failed: %w", err)
	}
	return out, nil
}
