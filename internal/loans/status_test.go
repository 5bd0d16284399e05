package loans

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"biblioteca-gateway/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	today := day(2024, 5, 20)

	t.Run("returned on time is finished", func(t *testing.T) {
		got := DeriveStatus(day(2024, 5, 10), ptr(day(2024, 5, 10)), today)
		assert.Equal(t, domain.LoanStatusFinished, got)
	})

	t.Run("returned early is finished", func(t *testing.T) {
		got := DeriveStatus(day(2024, 5, 10), ptr(day(2024, 5, 8)), today)
		assert.Equal(t, domain.LoanStatusFinished, got)
	})

	t.Run("returned after the expected date is late", func(t *testing.T) {
		got := DeriveStatus(day(2024, 5, 10), ptr(day(2024, 5, 12)), today)
		assert.Equal(t, domain.LoanStatusLate, got)
	})

	t.Run("actual return date makes today irrelevant", func(t *testing.T) {
		farFuture := day(2030, 1, 1)
		got := DeriveStatus(day(2024, 5, 10), ptr(day(2024, 5, 9)), farFuture)
		assert.Equal(t, domain.LoanStatusFinished, got)
	})

	t.Run("open loan due in the future is in progress", func(t *testing.T) {
		got := DeriveStatus(day(2024, 5, 25), nil, today)
		assert.Equal(t, domain.LoanStatusInProgress, got)
	})

	t.Run("open loan due today is still in progress", func(t *testing.T) {
		got := DeriveStatus(day(2024, 5, 20), nil, today)
		assert.Equal(t, domain.LoanStatusInProgress, got)
	})

	t.Run("open loan due yesterday is late", func(t *testing.T) {
		got := DeriveStatus(day(2024, 5, 19), nil, today)
		assert.Equal(t, domain.LoanStatusLate, got)
	})
}

func TestWillSanction(t *testing.T) {
	today := day(2024, 5, 20)

	t.Run("overdue and not returned", func(t *testing.T) {
		assert.True(t, WillSanction(day(2024, 5, 19), today, false))
	})

	t.Run("overdue but already returned", func(t *testing.T) {
		assert.False(t, WillSanction(day(2024, 5, 19), today, true))
	})

	t.Run("due today", func(t *testing.T) {
		assert.False(t, WillSanction(day(2024, 5, 20), today, false))
	})

	t.Run("due in the future", func(t *testing.T) {
		assert.False(t, WillSanction(day(2024, 5, 25), today, false))
	})
}
