package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nutrigood/nutrigood-backend/internal/api/middleware"
	"github.com/nutrigood/nutrigood-backend/internal/api/response"
	"github.com/nutrigood/nutrigood-backend/internal/product"
)

type createProductRequest struct {
	Name  string `json:"namaProduct"`
	Value string `json:"valueProduct"`
}

// ProductHandler handles product CRUD endpoints.
type ProductHandler struct {
	repo product.Repository
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(repo product.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if req.Name == "" || req.Value == "" {
		response.Fail(w, http.StatusBadRequest, "namaProduct and valueProduct are required")
		return
	}

	p := &product.Product{
		UserID: identity.UserID,
		Name:   req.Name,
		Value:  req.Value,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		slog.Error("failed to add product", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to add product")
		return
	}

	response.SuccessMessage(w, http.StatusCreated, "Product added successfully",
		map[string]int64{"id": p.ID})
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	products, err := h.repo.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list products", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	response.Success(w, http.StatusOK, map[string]any{"products": products})
}

// ListToday handles GET /products/today.
func (h *ProductHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	products, err := h.repo.ListToday(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list today's products", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch today's products")
		return
	}

	response.Success(w, http.StatusOK, products)
}

// GetByID handles GET /products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "id must be a number")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.Fail(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("failed to fetch product", "error", err, "id", id, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	response.Success(w, http.StatusOK, p)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "id must be a number")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			response.Fail(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("failed to delete product", "error", err, "id", id, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	response.SuccessMessage(w, http.StatusOK, "Product deleted successfully", nil)
}
