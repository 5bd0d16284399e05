package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/logger"
)

// UpstreamError reports a non-2xx response from the library server.
type UpstreamError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// HTTPClient talks JSON over HTTP to the external library server. It
// implements CatalogAPI, UserAPI and LoanAPI. No retries: a failed call is
// surfaced to the caller, which owns the recovery policy.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	logger.ExternalServiceCall("library-server", method+" "+path)
	resp, err := c.http.Do(req)
	logger.ExternalServiceResult("library-server", method+" "+path, err)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var wires []bookWire
	if err := c.do(ctx, http.MethodGet, "/api/libros", nil, &wires); err != nil {
		return nil, err
	}
	books := make([]domain.Book, 0, len(wires))
	for _, w := range wires {
		books = append(books, mapBookFromWire(w))
	}
	return books, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var wires []categoryWire
	if err := c.do(ctx, http.MethodGet, "/api/categorias", nil, &wires); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, mapCategoryFromWire(w))
	}
	return categories, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var wires []userWire
	if err := c.do(ctx, http.MethodGet, "/api/usuarios", nil, &wires); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(wires))
	for _, w := range wires {
		users = append(users, mapUserFromWire(w))
	}
	return users, nil
}

func (c *HTTPClient) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	var wires []loanWire
	if err := c.do(ctx, http.MethodGet, "/api/prestamos", nil, &wires); err != nil {
		return nil, err
	}
	result := make([]domain.Loan, 0, len(wires))
	for _, w := range wires {
		l, err := mapLoanFromWire(w)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	return result, nil
}

func (c *HTTPClient) GetLoan(ctx context.Context, id int32) (*domain.Loan, error) {
	var w loanWire
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/prestamos/%d", id), nil, &w); err != nil {
		return nil, err
	}
	return mapLoanFromWire(w)
}

func (c *HTTPClient) CreateLoan(ctx context.Context, loan *domain.Loan) (*SaveResult, error) {
	var w loanWire
	if err := c.do(ctx, http.MethodPost, "/api/prestamos", mapLoanToWire(loan), &w); err != nil {
		return nil, err
	}
	return saveResultFromWire(w)
}

func (c *HTTPClient) UpdateLoan(ctx context.Context, id int32, loan *domain.Loan) (*SaveResult, error) {
	var w loanWire
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/prestamos/%d", id), mapLoanToWire(loan), &w); err != nil {
		return nil, err
	}
	return saveResultFromWire(w)
}

func saveResultFromWire(w loanWire) (*SaveResult, error) {
	saved, err := mapLoanFromWire(w)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Loan: saved, SanctionApplied: w.SanctionApplied}, nil
}
