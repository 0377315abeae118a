package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigood/nutrigood-backend/internal/api/handler"
	"github.com/nutrigood/nutrigood-backend/internal/api/middleware"
	"github.com/nutrigood/nutrigood-backend/internal/auth"
	"github.com/nutrigood/nutrigood-backend/internal/product"
)

// --- Mock Product Repository ---

type mockProductRepo struct {
	createFn     func(ctx context.Context, p *product.Product) error
	listByUserFn func(ctx context.Context, userID string) ([]product.Product, error)
	listTodayFn  func(ctx context.Context, userID string) ([]product.Product, error)
	getByIDFn    func(ctx context.Context, id int64) (*product.Product, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *mockProductRepo) Create(ctx context.Context, p *product.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = 1
	p.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockProductRepo) ListByUser(ctx context.Context, userID string) ([]product.Product, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []product.Product{}, nil
}

func (m *mockProductRepo) ListToday(ctx context.Context, userID string) ([]product.Product, error) {
	if m.listTodayFn != nil {
		return m.listTodayFn(ctx, userID)
	}
	return []product.Product{}, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, product.ErrProductNotFound
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Helpers ---

// productRouter mounts the handler behind auth middleware the way the real
// router does, so URL params and identity both resolve.
func productRouter(t *testing.T, repo product.Repository) (http.Handler, string) {
	t.Helper()

	tokens := auth.NewTokenService(testSecret, time.Hour)
	token, err := tokens.Issue("user-123")
	require.NoError(t, err)

	h := handler.NewProductHandler(repo)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))
		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/today", h.ListToday)
			r.Get("/{id}", h.GetByID)
			r.Delete("/{id}", h.Delete)
		})
	})
	return r, token
}

func productRequest(t *testing.T, router http.Handler, method, path, payload, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestProductCreate_OwnedByAuthenticatedUser(t *testing.T) {
	var created *product.Product
	repo := &mockProductRepo{
		createFn: func(_ context.Context, p *product.Product) error {
			p.ID = 7
			created = p
			return nil
		},
	}
	router, token := productRouter(t, repo)

	w := productRequest(t, router, http.MethodPost, "/products",
		`{"namaProduct":"Biskuit","valueProduct":"120 kcal"}`, token)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Product added successfully", env["message"])
	assert.EqualValues(t, 7, env["data"].(map[string]any)["id"])

	require.NotNil(t, created)
	assert.Equal(t, "user-123", created.UserID, "ownership comes from the token, not the payload")
}

func TestProductCreate_MissingFields(t *testing.T) {
	router, token := productRouter(t, &mockProductRepo{})

	w := productRequest(t, router, http.MethodPost, "/products",
		`{"namaProduct":"Biskuit"}`, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductList_ScopedToUser(t *testing.T) {
	repo := &mockProductRepo{
		listByUserFn: func(_ context.Context, userID string) ([]product.Product, error) {
			assert.Equal(t, "user-123", userID)
			return []product.Product{{ID: 1, UserID: userID, Name: "Biskuit", Value: "120 kcal"}}, nil
		},
	}
	router, token := productRouter(t, repo)

	w := productRequest(t, router, http.MethodGet, "/products", "", token)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	products := env["data"].(map[string]any)["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Biskuit", products[0].(map[string]any)["namaProduct"])
}

func TestProductGetByID_NotFound(t *testing.T) {
	router, token := productRouter(t, &mockProductRepo{})

	w := productRequest(t, router, http.MethodGet, "/products/42", "", token)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeEnvelope(t, w)["message"])
}

func TestProductGetByID_BadID(t *testing.T) {
	router, token := productRouter(t, &mockProductRepo{})

	w := productRequest(t, router, http.MethodGet, "/products/abc", "", token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductDelete_NotFound(t *testing.T) {
	repo := &mockProductRepo{
		deleteFn: func(_ context.Context, _ int64) error {
			return product.ErrProductNotFound
		},
	}
	router, token := productRouter(t, repo)

	w := productRequest(t, router, http.MethodDelete, "/products/42", "", token)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductDelete_Success(t *testing.T) {
	router, token := productRouter(t, &mockProductRepo{})

	w := productRequest(t, router, http.MethodDelete, "/products/1", "", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", decodeEnvelope(t, w)["message"])
}
