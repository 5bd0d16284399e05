package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/domain"
)

// MockLoanAPI
type MockLoanAPI struct {
	mock.Mock
}

func (m *MockLoanAPI) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanAPI) GetLoan(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanAPI) CreateLoan(ctx context.Context, loan *domain.Loan) (*client.SaveResult, error) {
	args := m.Called(ctx, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.SaveResult), args.Error(1)
}
func (m *MockLoanAPI) UpdateLoan(ctx context.Context, id int32, loan *domain.Loan) (*client.SaveResult, error) {
	args := m.Called(ctx, id, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.SaveResult), args.Error(1)
}

// MockReferenceData
type MockReferenceData struct {
	mock.Mock
}

func (m *MockReferenceData) Books(ctx context.Context) ([]domain.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockReferenceData) Users(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
