package loans

import (
	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
)

const monthKeyLayout = "2006-01"

// AggregateDelaysByMonth groups strictly-late returns by the calendar month
// of the actual return date (delay is attributed to when it was detected,
// not to when the loan was due) and computes the mean delay in days plus the
// number of delayed loans per month.
//
// Loans never returned, or returned on or before the expected date, do not
// contribute. An empty input yields an empty map.
func AggregateDelaysByMonth(all []domain.Loan) map[string]domain.DelayStatistic {
	type bucket struct {
		totalDays int
		count     int
	}
	buckets := make(map[string]*bucket)

	for _, l := range all {
		if l.ActualReturnDate == nil {
			continue
		}
		actual := dates.Day(*l.ActualReturnDate)
		expected := dates.Day(l.ExpectedReturnDate)
		delay := dates.DaysBetween(actual, expected)
		if delay <= 0 {
			continue
		}
		key := actual.Format(monthKeyLayout)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.totalDays += delay
		b.count++
	}

	stats := make(map[string]domain.DelayStatistic, len(buckets))
	for key, b := range buckets {
		stats[key] = domain.DelayStatistic{
			MeanDelayDays:    float64(b.totalDays) / float64(b.count),
			DelayedLoanCount: b.count,
		}
	}
	return stats
}
