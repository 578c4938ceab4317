package reports

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeDayEarnings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	employeeID := uuid.New()
	apptA := uuid.New()
	apptB := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "name", "price", "duration"}).
		AddRow(apptA, "Priya", "Hair Spa", 1200.0, "45 min").
		AddRow(apptA, "Priya", "Manicure", 400.0, "30 min").
		AddRow(apptB, "Rohan", "Haircut", 300.0, "20 min")

	mock.ExpectQuery("SELECT a.id, c.name, s.name, l.price, l.duration").
		WithArgs(employeeID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	repo := NewRepository(db)
	earnings, err := repo.EmployeeDayEarnings(context.Background(), employeeID, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1900.0, earnings.Total)
	assert.Equal(t, 2, earnings.Appointments)
	assert.Len(t, earnings.Lines, 3)
	assert.Equal(t, "2025-03-12", earnings.Date)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeDayEarnings_NoLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	employeeID := uuid.New()
	mock.ExpectQuery("SELECT a.id, c.name, s.name, l.price, l.duration").
		WithArgs(employeeID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "name", "price", "duration"}))

	repo := NewRepository(db)
	_, err = repo.EmployeeDayEarnings(context.Background(), employeeID, time.Now())
	assert.ErrorIs(t, err, ErrNoEarnings)
}

func TestEmployeePerformance_EndDayInclusive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	employeeID := uuid.New()
	appt := uuid.New()
	scheduled := time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "name", "name", "price", "date"}).
		AddRow(appt, "Priya", "Hair Spa", 1200.0, scheduled)

	// The window upper bound is the start of the day after end.
	mock.ExpectQuery("SELECT a.id, c.name, s.name, l.price, a.date").
		WithArgs(employeeID,
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(rows)

	repo := NewRepository(db)
	perf, err := repo.EmployeePerformance(context.Background(), employeeID,
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1200.0, perf.Total)
	assert.Equal(t, 1, perf.Appointments)
	assert.Equal(t, "2025-03-10", perf.Start)
	assert.Equal(t, "2025-03-14", perf.End)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupedPayments_MonthBucketsAscending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"month", "sum", "count"}).
		AddRow("2025-01", 4500.0, 12).
		AddRow("2025-02", 6200.0, 18)

	mock.ExpectQuery("SELECT to_char").WillReturnRows(rows)

	repo := NewRepository(db)
	months, err := repo.GroupedPayments(context.Background())
	require.NoError(t, err)

	require.Len(t, months, 2)
	assert.Equal(t, "2025-01", months[0].Month)
	assert.Equal(t, 4500.0, months[0].Total)
	assert.Equal(t, 18, months[1].Count)
}
