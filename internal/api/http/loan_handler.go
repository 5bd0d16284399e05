package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/loans"
)

// LoanHandler serves the loan list, loan detail and the delay statistics.
// Statuses are re-derived as of today before rendering, so a loan that went
// overdue since it was stored is already shown LATE.
type LoanHandler struct {
	loanAPI client.LoanAPI
	now     func() time.Time
}

func NewLoanHandler(loanAPI client.LoanAPI, now func() time.Time) *LoanHandler {
	if now == nil {
		now = time.Now
	}
	return &LoanHandler{loanAPI: loanAPI, now: now}
}

type loanView struct {
	ID                 int32             `json:"id"`
	BorrowerID         int32             `json:"borrower_id"`
	BookID             int32             `json:"book_id"`
	LoanDate           string            `json:"loan_date"`
	ExpectedReturnDate string            `json:"expected_return_date"`
	ActualReturnDate   *string           `json:"actual_return_date,omitempty"`
	Returned           bool              `json:"returned"`
	Status             domain.LoanStatus `json:"status"`
}

func (h *LoanHandler) toView(l domain.Loan, today time.Time) loanView {
	v := loanView{
		ID:                 l.ID,
		BorrowerID:         l.BorrowerID,
		BookID:             l.BookID,
		LoanDate:           dates.FormatDay(l.LoanDate),
		ExpectedReturnDate: dates.FormatDay(l.ExpectedReturnDate),
		Returned:           l.Returned,
		Status:             loans.DeriveStatus(l.ExpectedReturnDate, l.ActualReturnDate, today),
	}
	if l.ActualReturnDate != nil {
		s := dates.FormatDay(*l.ActualReturnDate)
		v.ActualReturnDate = &s
	}
	return v
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.loanAPI.ListLoans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	today := dates.Day(h.now())
	views := make([]loanView, 0, len(all))
	for _, l := range all {
		views = append(views, h.toView(l, today))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid loan id"})
		return
	}
	loan, err := h.loanAPI.GetLoan(r.Context(), int32(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toView(*loan, dates.Day(h.now())))
}

// DelayStats aggregates late returns per calendar month of the return date.
func (h *LoanHandler) DelayStats(w http.ResponseWriter, r *http.Request) {
	all, err := h.loanAPI.ListLoans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans.AggregateDelaysByMonth(all))
}
