// Package session implements the loan edit flow: one Form per in-progress
// create or edit, moving Loading → Editing ⇄ Submitting → Saved. Status and
// the sanction prediction are re-derived on every relevant field change, and
// the returned flag always mirrors the presence of an actual return date.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/events"
	"biblioteca-gateway/internal/loans"
)

type State string

const (
	StateLoading    State = "LOADING"
	StateLoadFailed State = "LOAD_FAILED"
	StateEditing    State = "EDITING"
	StateSubmitting State = "SUBMITTING"
	StateSaved      State = "SAVED"
)

// defaultLoanDays matches the upstream default loan period.
const defaultLoanDays = 14

// StateError reports an operation refused by the form's current state, e.g.
// editing a saved form or submitting one that is already in flight.
type StateError struct {
	State State
	Op    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("form is %s, cannot %s", e.State, e.Op)
}

// ReferenceData supplies the selection lists the form renders.
type ReferenceData interface {
	Books(ctx context.Context) ([]domain.Book, error)
	Users(ctx context.Context) ([]domain.User, error)
}

// FormData is the user-editable loan state. Status and Returned are derived
// fields: Returned mirrors ActualReturnDate presence and Status follows the
// date rules; neither is set directly.
type FormData struct {
	BorrowerID         int32
	BookID             int32
	LoanDate           time.Time
	ExpectedReturnDate time.Time
	ActualReturnDate   *time.Time
	Returned           bool
	Status             domain.LoanStatus
}

// Form is a single loan edit session. All methods are safe for concurrent
// use; only one submission can be in flight because Submit refuses any state
// but Editing.
type Form struct {
	ID     string
	loanID int32

	loanAPI client.LoanAPI
	refs    ReferenceData
	bus     *events.Bus
	now     func() time.Time

	mu           sync.Mutex
	state        State
	data         FormData
	books        []domain.Book
	users        []domain.User
	willSanction bool
	lastError    string
	touchedAt    time.Time
}

// Result reports a successful submission. SanctionApplied is the upstream's
// authoritative flag when the save response carried one, otherwise the
// client-side prediction at submit time.
type Result struct {
	Loan            *domain.Loan
	SanctionApplied bool
}

// NewForm opens a session. loanID zero means a new loan; otherwise the
// existing loan is fetched during Load.
func NewForm(loanID int32, loanAPI client.LoanAPI, refs ReferenceData, bus *events.Bus) *Form {
	f := &Form{
		ID:      uuid.NewString(),
		loanID:  loanID,
		loanAPI: loanAPI,
		refs:    refs,
		bus:     bus,
		now:     time.Now,
		state:   StateLoading,
	}
	today := dates.Day(f.now())
	f.data = FormData{
		LoanDate:           today,
		ExpectedReturnDate: today.AddDate(0, 0, defaultLoanDays),
	}
	f.rederiveLocked()
	f.touchedAt = f.now()
	return f
}

// Load fetches the selection lists and, when editing, the existing loan. The
// three fetches run concurrently and fail independently; the form becomes
// editable only once all of them succeed.
func (f *Form) Load(ctx context.Context) error {
	var (
		books    []domain.Book
		users    []domain.User
		existing *domain.Loan

		bookErr, userErr, loanErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		books, bookErr = f.refs.Books(ctx)
	}()
	go func() {
		defer wg.Done()
		users, userErr = f.refs.Users(ctx)
	}()
	if f.loanID != 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			existing, loanErr = f.loanAPI.GetLoan(ctx, f.loanID)
		}()
	}
	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := errors.Join(bookErr, userErr, loanErr); err != nil {
		f.state = StateLoadFailed
		f.lastError = err.Error()
		return err
	}

	f.books = books
	f.users = users
	if existing != nil {
		f.data = FormData{
			BorrowerID:         existing.BorrowerID,
			BookID:             existing.BookID,
			LoanDate:           dates.Day(existing.LoanDate),
			ExpectedReturnDate: dates.Day(existing.ExpectedReturnDate),
		}
		if existing.ActualReturnDate != nil {
			actual := dates.Day(*existing.ActualReturnDate)
			f.data.ActualReturnDate = &actual
		}
	}
	f.state = StateEditing
	f.lastError = ""
	f.rederiveLocked()
	f.touchedAt = f.now()
	return nil
}

// rederiveLocked recomputes the derived fields. Returned reflects the actual
// return date; Status and the sanction prediction follow from the dates.
func (f *Form) rederiveLocked() {
	today := dates.Day(f.now())
	f.data.Returned = f.data.ActualReturnDate != nil
	f.data.Status = loans.DeriveStatus(f.data.ExpectedReturnDate, f.data.ActualReturnDate, today)
	f.willSanction = loans.WillSanction(f.data.ExpectedReturnDate, today, f.data.Returned)
}

func (f *Form) editableLocked() error {
	if f.state != StateEditing {
		return &StateError{State: f.state, Op: "edit fields"}
	}
	return nil
}

// SetBorrower selects the borrower. The borrower is fixed once the loan
// exists; only new loans may choose one.
func (f *Form) SetBorrower(id int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if f.loanID != 0 {
		return domain.NewValidationError("borrower_id", "borrower cannot be changed on an existing loan")
	}
	f.data.BorrowerID = id
	f.touchedAt = f.now()
	return nil
}

// SetBook selects the book; like the borrower, fixed once the loan exists.
func (f *Form) SetBook(id int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if f.loanID != 0 {
		return domain.NewValidationError("book_id", "book cannot be changed on an existing loan")
	}
	f.data.BookID = id
	f.touchedAt = f.now()
	return nil
}

func (f *Form) SetLoanDate(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if f.loanID != 0 {
		return domain.NewValidationError("loan_date", "loan date cannot be changed on an existing loan")
	}
	f.data.LoanDate = dates.Day(t)
	f.rederiveLocked()
	f.touchedAt = f.now()
	return nil
}

func (f *Form) SetExpectedReturnDate(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.data.ExpectedReturnDate = dates.Day(t)
	f.rederiveLocked()
	f.touchedAt = f.now()
	return nil
}

// SetActualReturnDate records or clears the actual return. The returned flag
// is updated in the same step: no observer ever sees a date without the flag
// or the flag without a date.
func (f *Form) SetActualReturnDate(t *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if t == nil {
		f.data.ActualReturnDate = nil
	} else {
		actual := dates.Day(*t)
		f.data.ActualReturnDate = &actual
	}
	f.rederiveLocked()
	f.touchedAt = f.now()
	return nil
}

// validateLocked guards consistency before any network call. The
// returned/date checks should be unreachable given the bidirectional
// enforcement above, but stale state must not reach the server.
func (f *Form) validateLocked() error {
	if f.data.BorrowerID == 0 {
		return domain.NewValidationError("borrower_id", "a borrower must be selected")
	}
	if f.data.BookID == 0 {
		return domain.NewValidationError("book_id", "a book must be selected")
	}
	if f.data.ExpectedReturnDate.Before(f.data.LoanDate) {
		return domain.NewValidationError("expected_return_date", "expected return date must not precede the loan date")
	}
	if f.data.Returned && f.data.ActualReturnDate == nil {
		return domain.NewValidationError("actual_return_date", "a returned loan must have an actual return date")
	}
	if !f.data.Returned && f.data.ActualReturnDate != nil {
		return domain.NewValidationError("returned", "a loan with an actual return date must be marked returned")
	}
	return nil
}

func (f *Form) buildLoanLocked() *domain.Loan {
	l := &domain.Loan{
		ID:                 f.loanID,
		BorrowerID:         f.data.BorrowerID,
		BookID:             f.data.BookID,
		LoanDate:           f.data.LoanDate,
		ExpectedReturnDate: f.data.ExpectedReturnDate,
		Returned:           f.data.Returned,
		Status:             f.data.Status,
	}
	if f.data.ActualReturnDate != nil {
		actual := *f.data.ActualReturnDate
		l.ActualReturnDate = &actual
	}
	return l
}

// Submit validates the form, sends the create/update upstream and publishes
// the refresh signals. Validation failures never reach the network. On a
// rejected save the form returns to Editing with its input retained.
func (f *Form) Submit(ctx context.Context) (*Result, error) {
	f.mu.Lock()
	if f.state != StateEditing {
		state := f.state
		f.mu.Unlock()
		return nil, &StateError{State: state, Op: "submit"}
	}
	f.rederiveLocked()
	if err := f.validateLocked(); err != nil {
		f.lastError = err.Error()
		f.mu.Unlock()
		return nil, err
	}
	payload := f.buildLoanLocked()
	predicted := f.willSanction
	f.state = StateSubmitting
	f.lastError = ""
	f.mu.Unlock()

	var (
		saved *client.SaveResult
		err   error
	)
	if f.loanID != 0 {
		saved, err = f.loanAPI.UpdateLoan(ctx, f.loanID, payload)
	} else {
		saved, err = f.loanAPI.CreateLoan(ctx, payload)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchedAt = f.now()

	if err != nil {
		f.state = StateEditing
		f.lastError = err.Error()
		return nil, err
	}

	f.state = StateSaved
	sanction := predicted
	if saved.SanctionApplied != nil {
		sanction = *saved.SanctionApplied
	}
	f.bus.Publish(events.TopicLoansUpdated)
	if sanction {
		f.bus.Publish(events.TopicSanctionsUpdated)
	}
	return &Result{Loan: saved.Loan, SanctionApplied: sanction}, nil
}

// LastTouched reports the last user interaction, for TTL expiry.
func (f *Form) LastTouched() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touchedAt
}
