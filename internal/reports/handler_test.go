package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GovindxSharma/bookmyglow/internal/cache"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

func TestGroupedPayments_CacheHitSkipsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.New(client, time.Minute, logging.Default())

	rows := sqlmock.NewRows([]string{"month", "sum", "count"}).
		AddRow("2025-03", 900.0, 3)
	mock.ExpectQuery("SELECT to_char").WillReturnRows(rows)

	handler := NewHandler(NewRepository(db), c, logging.Default())
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	// First request populates the cache from the database.
	resp, err := http.Get(srv.URL + "/payments/grouped")
	require.NoError(t, err)
	var first GroupedPaymentsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
	resp.Body.Close()
	require.Len(t, first.Months, 1)

	// Second request is answered from the cache; no query is expected.
	resp, err = http.Get(srv.URL + "/payments/grouped")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))

	var second GroupedPaymentsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	assert.Equal(t, first, second)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeEarnings_BadParams(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewHandler(NewRepository(db), nil, logging.Default())
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/employees/not-a-uuid/earnings")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmployeePerformance_RejectsInvertedWindow(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := NewHandler(NewRepository(db), nil, logging.Default())
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/employees/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/performance?start=2025-03-10&end=2025-03-01")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
