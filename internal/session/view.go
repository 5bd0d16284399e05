package session

import (
	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
)

// View is the read-only snapshot served to the UI. Dates are rendered as
// yyyy-mm-dd strings.
type View struct {
	ID                 string            `json:"id"`
	State              State             `json:"state"`
	LoanID             int32             `json:"loan_id,omitempty"`
	BorrowerID         int32             `json:"borrower_id"`
	BookID             int32             `json:"book_id"`
	LoanDate           string            `json:"loan_date"`
	ExpectedReturnDate string            `json:"expected_return_date"`
	ActualReturnDate   *string           `json:"actual_return_date,omitempty"`
	Returned           bool              `json:"returned"`
	Status             domain.LoanStatus `json:"status"`
	WillSanction       bool              `json:"will_sanction"`
	Error              string            `json:"error,omitempty"`
	Books              []domain.Book     `json:"books"`
	Users              []domain.User     `json:"users"`
}

// View returns the current snapshot of the form.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:                 f.ID,
		State:              f.state,
		LoanID:             f.loanID,
		BorrowerID:         f.data.BorrowerID,
		BookID:             f.data.BookID,
		LoanDate:           dates.FormatDay(f.data.LoanDate),
		ExpectedReturnDate: dates.FormatDay(f.data.ExpectedReturnDate),
		Returned:           f.data.Returned,
		Status:             f.data.Status,
		WillSanction:       f.willSanction,
		Error:              f.lastError,
		Books:              f.books,
		Users:              f.users,
	}
	if f.data.ActualReturnDate != nil {
		s := dates.FormatDay(*f.data.ActualReturnDate)
		v.ActualReturnDate = &s
	}
	return v
}
