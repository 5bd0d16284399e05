// Package client is the gateway's view of the external library server. The
// rest of the application consumes only the interfaces below; the server
// owns persistence, duplicate detection and the authoritative sanction
// decision, none of which are implemented here.
package client

import (
	"context"

	"biblioteca-gateway/internal/domain"
)

type CatalogAPI interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type UserAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type LoanAPI interface {
	ListLoans(ctx context.Context) ([]domain.Loan, error)
	GetLoan(ctx context.Context, id int32) (*domain.Loan, error)
	CreateLoan(ctx context.Context, loan *domain.Loan) (*SaveResult, error)
	UpdateLoan(ctx context.Context, id int32, loan *domain.Loan) (*SaveResult, error)
}

// SaveResult is the upstream response to a loan create/update.
// SanctionApplied carries the server's authoritative sanction decision when
// the response includes one; nil means the server did not say, and callers
// fall back to the client-side prediction.
type SaveResult struct {
	Loan            *domain.Loan
	SanctionApplied *bool
}
