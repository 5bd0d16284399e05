package client

import (
	"fmt"

	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
)

// Wire DTOs use the upstream server's field names and status tokens. Date
// strings may carry a time component; they are truncated to the date-only
// portion before use.

type bookWire struct {
	ID    int32  `json:"id"`
	Title string `json:"titulo"`
}

type userWire struct {
	ID            int32  `json:"id"`
	Name          string `json:"nombre"`
	NationalID    string `json:"cedula"`
	Email         string `json:"email"`
	SanctionCount int32  `json:"sanciones"`
}

type categoryWire struct {
	ID   int32  `json:"id"`
	Name string `json:"nombre"`
}

type loanWire struct {
	ID                 int32     `json:"id,omitempty"`
	Borrower           *userWire `json:"usuario,omitempty"`
	BorrowerID         int32     `json:"usuarioId,omitempty"`
	Book               *bookWire `json:"libro,omitempty"`
	BookID             int32     `json:"libroId,omitempty"`
	LoanDate           string    `json:"fechaPrestamo"`
	ExpectedReturnDate string    `json:"fechaDevolucionEsperada"`
	ActualReturnDate   *string   `json:"fechaDevolucionReal"`
	Status             string    `json:"estado"`
	Returned           bool      `json:"devuelto"`
	SanctionApplied    *bool     `json:"sancionAplicada,omitempty"`
}

const (
	wireStatusInProgress = "EN_CURSO"
	wireStatusLate       = "RETRASADO"
	wireStatusFinished   = "FINALIZADO"
)

// mapWireStatus accepts both the upstream tokens and the canonical ones;
// older server revisions already emit the canonical set.
func mapWireStatus(s string) domain.LoanStatus {
	switch s {
	case wireStatusInProgress, string(domain.LoanStatusInProgress):
		return domain.LoanStatusInProgress
	case wireStatusLate, string(domain.LoanStatusLate):
		return domain.LoanStatusLate
	case wireStatusFinished, string(domain.LoanStatusFinished):
		return domain.LoanStatusFinished
	default:
		return domain.LoanStatus(s)
	}
}

func mapDomainStatus(s domain.LoanStatus) string {
	switch s {
	case domain.LoanStatusInProgress:
		return wireStatusInProgress
	case domain.LoanStatusLate:
		return wireStatusLate
	case domain.LoanStatusFinished:
		return wireStatusFinished
	default:
		return string(s)
	}
}

func mapBookFromWire(w bookWire) domain.Book {
	return domain.Book{ID: w.ID, Title: w.Title}
}

func mapUserFromWire(w userWire) domain.User {
	return domain.User{
		ID:            w.ID,
		Name:          w.Name,
		NationalID:    w.NationalID,
		Email:         w.Email,
		SanctionCount: w.SanctionCount,
	}
}

func mapCategoryFromWire(w categoryWire) domain.Category {
	return domain.Category{ID: w.ID, Name: w.Name}
}

func mapLoanFromWire(w loanWire) (*domain.Loan, error) {
	loanDate, err := dates.ParseDay(w.LoanDate)
	if err != nil {
		return nil, fmt.Errorf("loan %d: %w", w.ID, err)
	}
	expected, err := dates.ParseDay(w.ExpectedReturnDate)
	if err != nil {
		return nil, fmt.Errorf("loan %d: %w", w.ID, err)
	}

	l := &domain.Loan{
		ID:                 w.ID,
		BorrowerID:         w.BorrowerID,
		BookID:             w.BookID,
		LoanDate:           loanDate,
		ExpectedReturnDate: expected,
		Returned:           w.Returned,
		Status:             mapWireStatus(w.Status),
	}
	if w.Borrower != nil {
		l.BorrowerID = w.Borrower.ID
	}
	if w.Book != nil {
		l.BookID = w.Book.ID
	}
	if w.ActualReturnDate != nil && *w.ActualReturnDate != "" {
		actual, err := dates.ParseDay(*w.ActualReturnDate)
		if err != nil {
			return nil, fmt.Errorf("loan %d: %w", w.ID, err)
		}
		l.ActualReturnDate = &actual
	}
	return l, nil
}

func mapLoanToWire(l *domain.Loan) loanWire {
	w := loanWire{
		BorrowerID:         l.BorrowerID,
		BookID:             l.BookID,
		LoanDate:           dates.FormatDay(l.LoanDate),
		ExpectedReturnDate: dates.FormatDay(l.ExpectedReturnDate),
		Status:             mapDomainStatus(l.Status),
		Returned:           l.Returned,
	}
	if l.ActualReturnDate != nil {
		s := dates.FormatDay(*l.ActualReturnDate)
		w.ActualReturnDate = &s
	}
	return w
}
