package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/corebank/internal/adapter/http/dto"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// GLSetupService creates GL nodes and sub-products.
type GLSetupService interface {
	Create(ctx context.Context, input usecase.CreateGLInput) (*domain.GLSetup, error)
	CreateSubProduct(ctx context.Context, input usecase.CreateSubProductInput) (*domain.SubProduct, error)
}

// GLHierarchyService walks the GL tree.
type GLHierarchyService interface {
	Path(ctx context.Context, glNum string) ([]*domain.GLSetup, error)
	Children(ctx context.Context, glNum string) ([]*domain.GLSetup, error)
	Profile(ctx context.Context, glNum string) (*domain.GLProfile, error)
}

// GLHandler handles chart-of-accounts requests.
type GLHandler struct {
	setup     GLSetupService
	hierarchy GLHierarchyService
}

// NewGLHandler creates a new GLHandler.
func NewGLHandler(setup GLSetupService, hierarchy GLHierarchyService) *GLHandler {
	return &GLHandler{setup: setup, hierarchy: hierarchy}
}

// Create adds a GL node.
func (h *GLHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	gl, err := h.setup.Create(r.Context(), req.ToUseCaseInput(actingUser(r)))
	if err != nil {
		writeDomainError(w, "failed to create GL", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.GLFromDomain(gl))
}

// Path returns the chain of GLs from the root down to glNum.
func (h *GLHandler) Path(w http.ResponseWriter, r *http.Request) {
	path, err := h.hierarchy.Path(r.Context(), chi.URLParam(r, "glNum"))
	if err != nil {
		writeDomainError(w, "failed to resolve GL path", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GLsFromDomain(path))
}

// Get returns a GL node with its overdraft classification.
func (h *GLHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.hierarchy.Profile(r.Context(), chi.URLParam(r, "glNum"))
	if err != nil {
		writeDomainError(w, "failed to get GL", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GLProfileFromDomain(profile))
}

// Children lists the direct children of a GL.
func (h *GLHandler) Children(w http.ResponseWriter, r *http.Request) {
	children, err := h.hierarchy.Children(r.Context(), chi.URLParam(r, "glNum"))
	if err != nil {
		writeDomainError(w, "failed to list GL children", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GLsFromDomain(children))
}

// CreateSubProduct adds a sub-product under an existing product.
func (h *GLHandler) CreateSubProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSubProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sub, err := h.setup.CreateSubProduct(r.Context(), req.ToUseCaseInput(actingUser(r)))
	if err != nil {
		writeDomainError(w, "failed to create sub-product", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SubProductFromDomain(sub))
}
