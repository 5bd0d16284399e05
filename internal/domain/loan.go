package domain

import "time"

type LoanStatus string

const (
	LoanStatusInProgress LoanStatus = "IN_PROGRESS"
	LoanStatusLate       LoanStatus = "LATE"
	LoanStatusFinished   LoanStatus = "FINISHED"
)

// Loan is a book lent to a borrower. Dates are calendar dates (midnight UTC,
// no time-of-day component). Returned is true iff ActualReturnDate is set;
// Status is derived from the dates and is never set directly by a caller.
type Loan struct {
	ID                 int32      `json:"id,omitempty"`
	BorrowerID         int32      `json:"borrower_id"`
	BookID             int32      `json:"book_id"`
	LoanDate           time.Time  `json:"loan_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`
	Returned           bool       `json:"returned"`
	Status             LoanStatus `json:"status"`
}

// DelayStatistic summarizes late returns for one calendar month.
type DelayStatistic struct {
	MeanDelayDays    float64 `json:"mean_delay_days"`
	DelayedLoanCount int     `json:"delayed_loan_count"`
}
