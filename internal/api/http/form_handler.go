package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/dates"
	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/events"
	"biblioteca-gateway/internal/session"
)

// FormHandler manages loan edit sessions over HTTP. Opening a form fetches
// the selection lists and, when editing, the existing loan; field changes
// re-derive status and the sanction warning; submit forwards the save to the
// upstream server.
type FormHandler struct {
	store   *session.Store
	loanAPI client.LoanAPI
	refs    session.ReferenceData
	bus     *events.Bus
}

func NewFormHandler(store *session.Store, loanAPI client.LoanAPI, refs session.ReferenceData, bus *events.Bus) *FormHandler {
	return &FormHandler{store: store, loanAPI: loanAPI, refs: refs, bus: bus}
}

type openFormRequest struct {
	LoanID int32 `json:"loan_id,omitempty"`
}

// changeRequest carries one or more field edits. For actual_return_date an
// empty string clears the date (and with it the returned flag).
type changeRequest struct {
	BorrowerID         *int32  `json:"borrower_id,omitempty"`
	BookID             *int32  `json:"book_id,omitempty"`
	LoanDate           *string `json:"loan_date,omitempty"`
	ExpectedReturnDate *string `json:"expected_return_date,omitempty"`
	ActualReturnDate   *string `json:"actual_return_date,omitempty"`
}

type submitResponse struct {
	Form            session.View `json:"form"`
	SanctionApplied bool         `json:"sanction_applied"`
	Loan            *domain.Loan `json:"loan,omitempty"`
}

func (h *FormHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openFormRequest
	if r.Body != nil {
		// An empty body opens a form for a new loan.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
			return
		}
	}

	form := session.NewForm(req.LoanID, h.loanAPI, h.refs, h.bus)
	if err := form.Load(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.store.Put(form)
	writeJSON(w, http.StatusCreated, form.View())
}

func (h *FormHandler) get(w http.ResponseWriter, r *http.Request) (*session.Form, bool) {
	form, ok := h.store.Get(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown or expired form"})
		return nil, false
	}
	return form, true
}

func (h *FormHandler) View(w http.ResponseWriter, r *http.Request) {
	form, ok := h.get(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, form.View())
}

func (h *FormHandler) Change(w http.ResponseWriter, r *http.Request) {
	form, ok := h.get(w, r)
	if !ok {
		return
	}

	var req changeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	if err := applyChanges(form, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form.View())
}

func applyChanges(form *session.Form, req changeRequest) error {
	if req.BorrowerID != nil {
		if err := form.SetBorrower(*req.BorrowerID); err != nil {
			return err
		}
	}
	if req.BookID != nil {
		if err := form.SetBook(*req.BookID); err != nil {
			return err
		}
	}
	if req.LoanDate != nil {
		t, err := dates.ParseDay(*req.LoanDate)
		if err != nil {
			return domain.NewValidationError("loan_date", err.Error())
		}
		if err := form.SetLoanDate(t); err != nil {
			return err
		}
	}
	if req.ExpectedReturnDate != nil {
		t, err := dates.ParseDay(*req.ExpectedReturnDate)
		if err != nil {
			return domain.NewValidationError("expected_return_date", err.Error())
		}
		if err := form.SetExpectedReturnDate(t); err != nil {
			return err
		}
	}
	if req.ActualReturnDate != nil {
		if *req.ActualReturnDate == "" {
			return form.SetActualReturnDate(nil)
		}
		t, err := dates.ParseDay(*req.ActualReturnDate)
		if err != nil {
			return domain.NewValidationError("actual_return_date", err.Error())
		}
		return form.SetActualReturnDate(&t)
	}
	return nil
}

func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form, ok := h.get(w, r)
	if !ok {
		return
	}

	result, err := form.Submit(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Form:            form.View(),
		SanctionApplied: result.SanctionApplied,
		Loan:            result.Loan,
	})
}
