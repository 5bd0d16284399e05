package http

import (
	"time"

	"github.com/gorilla/mux"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/events"
	"biblioteca-gateway/internal/session"
)

// Deps holds everything the REST surface needs.
type Deps struct {
	LoanAPI  client.LoanAPI
	Refs     ReferenceSource
	Sessions *session.Store
	Bus      *events.Bus
	Now      func() time.Time
}

// NewRouter wires all gateway routes.
func NewRouter(d Deps) *mux.Router {
	loanHandler := NewLoanHandler(d.LoanAPI, d.Now)
	formHandler := NewFormHandler(d.Sessions, d.LoanAPI, d.Refs, d.Bus)
	refHandler := NewReferenceHandler(d.Refs)
	eventsHandler := NewEventsHandler(d.Bus)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Loans; the fixed path must be registered before the {id} route.
	api.HandleFunc("/loans/delay-stats", loanHandler.DelayStats).Methods("GET")
	api.HandleFunc("/loans", loanHandler.List).Methods("GET")
	api.HandleFunc("/loans/{id:[0-9]+}", loanHandler.Get).Methods("GET")

	// Loan edit sessions
	api.HandleFunc("/loan-forms", formHandler.Open).Methods("POST")
	api.HandleFunc("/loan-forms/{id}", formHandler.View).Methods("GET")
	api.HandleFunc("/loan-forms/{id}", formHandler.Change).Methods("PATCH")
	api.HandleFunc("/loan-forms/{id}/submit", formHandler.Submit).Methods("POST")

	// Reference data
	api.HandleFunc("/books", refHandler.Books).Methods("GET")
	api.HandleFunc("/users", refHandler.Users).Methods("GET")
	api.HandleFunc("/categories", refHandler.Categories).Methods("GET")

	// Cross-view refresh signals
	api.HandleFunc("/events", eventsHandler.Stream).Methods("GET")

	return r
}
