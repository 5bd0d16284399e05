package http

import (
	"context"
	"net/http"

	"biblioteca-gateway/internal/domain"
)

// ReferenceSource is the cached reference data the selection lists render.
type ReferenceSource interface {
	Books(ctx context.Context) ([]domain.Book, error)
	Users(ctx context.Context) ([]domain.User, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

type ReferenceHandler struct {
	refs ReferenceSource
}

func NewReferenceHandler(refs ReferenceSource) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

func (h *ReferenceHandler) Books(w http.ResponseWriter, r *http.Request) {
	books, err := h.refs.Books(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *ReferenceHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.refs.Users(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *ReferenceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.refs.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
