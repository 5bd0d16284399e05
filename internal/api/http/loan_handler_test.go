package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/events"
	"biblioteca-gateway/internal/session"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

var fixedToday = day(2024, 5, 20)

func newTestRouter(api *MockLoanAPI, refs *MockReferenceSource) (*mux.Router, *events.Bus) {
	bus := events.NewBus()
	r := NewRouter(Deps{
		LoanAPI:  api,
		Refs:     refs,
		Sessions: session.NewStore(30 * time.Minute),
		Bus:      bus,
		Now:      func() time.Time { return fixedToday },
	})
	return r, bus
}

func newRefs() *MockReferenceSource {
	refs := new(MockReferenceSource)
	refs.On("Books", mock.Anything).Return([]domain.Book{{ID: 5, Title: "Rayuela"}}, nil)
	refs.On("Users", mock.Anything).Return([]domain.User{{ID: 3, Name: "Ana"}}, nil)
	refs.On("Categories", mock.Anything).Return([]domain.Category{{ID: 7, Name: "Novela"}}, nil)
	return refs
}

func doRequest(r *mux.Router, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListLoansRederivesStatus(t *testing.T) {
	api := new(MockLoanAPI)
	// Stored as in-progress, but overdue relative to today.
	api.On("ListLoans", mock.Anything).Return([]domain.Loan{{
		ID:                 1,
		BorrowerID:         3,
		BookID:             5,
		LoanDate:           day(2024, 5, 1),
		ExpectedReturnDate: day(2024, 5, 10),
		Status:             domain.LoanStatusInProgress,
	}}, nil)

	r, _ := newTestRouter(api, newRefs())
	rec := doRequest(r, http.MethodGet, "/api/loans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "LATE", views[0]["status"])
	assert.Equal(t, "2024-05-10", views[0]["expected_return_date"])
}

func TestGetLoan(t *testing.T) {
	api := new(MockLoanAPI)
	api.On("GetLoan", mock.Anything, int32(5)).Return(&domain.Loan{
		ID:                 5,
		BorrowerID:         3,
		BookID:             5,
		LoanDate:           day(2024, 5, 1),
		ExpectedReturnDate: day(2024, 5, 25),
		Status:             domain.LoanStatusInProgress,
	}, nil)

	r, _ := newTestRouter(api, newRefs())
	rec := doRequest(r, http.MethodGet, "/api/loans/5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, float64(5), view["id"])
	assert.Equal(t, "IN_PROGRESS", view["status"])
}

func TestGetLoanUpstreamFailure(t *testing.T) {
	api := new(MockLoanAPI)
	api.On("GetLoan", mock.Anything, int32(5)).
		Return(nil, &client.UpstreamError{StatusCode: 500, Method: "GET", Path: "/api/prestamos/5"})

	r, _ := newTestRouter(api, newRefs())
	rec := doRequest(r, http.MethodGet, "/api/loans/5", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDelayStatsRoute(t *testing.T) {
	api := new(MockLoanAPI)
	api.On("ListLoans", mock.Anything).Return([]domain.Loan{
		{ID: 1, ExpectedReturnDate: day(2024, 1, 10), ActualReturnDate: ptr(day(2024, 1, 15))},
		{ID: 2, ExpectedReturnDate: day(2024, 1, 10), ActualReturnDate: ptr(day(2024, 1, 10))},
	}, nil)

	r, _ := newTestRouter(api, newRefs())
	rec := doRequest(r, http.MethodGet, "/api/loans/delay-stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]domain.DelayStatistic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, domain.DelayStatistic{MeanDelayDays: 5, DelayedLoanCount: 1}, stats["2024-01"])
}

func TestReferenceRoutes(t *testing.T) {
	r, _ := newTestRouter(new(MockLoanAPI), newRefs())

	for _, path := range []string{"/api/books", "/api/users", "/api/categories"} {
		rec := doRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
