// Package loans implements the loan lifecycle rules: status derivation from
// the return dates, sanction prediction for overdue loans, and per-month
// delay statistics.
package loans

import (
	"time"

	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
)

// DeriveStatus computes the canonical loan status from its dates. The
// function is pure and total: with an actual return date present the result
// depends only on actual vs expected; without one, today decides between
// LATE and IN_PROGRESS. Callers re-derive on every change to any input.
func DeriveStatus(expected time.Time, actual *time.Time, today time.Time) domain.LoanStatus {
	if actual != nil {
		if dates.Day(*actual).After(dates.Day(expected)) {
			return domain.LoanStatusLate
		}
		return domain.LoanStatusFinished
	}
	if dates.StrictlyPastDueAsOf(expected, today) {
		return domain.LoanStatusLate
	}
	return domain.LoanStatusInProgress
}

// WillSanction predicts whether saving the loan will cause the upstream
// server to record a sanction: the loan is overdue and not yet marked
// returned. Advisory only; the upstream decision at save time is
// authoritative and is preferred over this prediction once available.
func WillSanction(expected, today time.Time, returned bool) bool {
	return !returned && dates.StrictlyPastDueAsOf(expected, today)
}
