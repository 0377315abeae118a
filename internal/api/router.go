package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/nutrigood/nutrigood-backend/internal/api/handler"
	"github.com/nutrigood/nutrigood-backend/internal/api/middleware"
	"github.com/nutrigood/nutrigood-backend/internal/auth"
	"github.com/nutrigood/nutrigood-backend/internal/product"
	"github.com/nutrigood/nutrigood-backend/internal/upload"
	"github.com/nutrigood/nutrigood-backend/internal/user"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthService *auth.Service
	Tokens      *auth.TokenService
	UserRepo    user.Repository
	ProductRepo product.Repository
	Gateway     *upload.Gateway
	DBPinger    handler.DBPinger
	Version     string
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Registration and login are public; everything touching user-owned
// data sits behind the bearer-token middleware.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	r.Get("/health", handler.NewHealthHandler(deps.DBPinger, deps.Version).ServeHTTP)

	userHandler := handler.NewUserHandler(deps.AuthService, deps.UserRepo)
	r.Post("/users/register", userHandler.Register)
	r.Post("/users/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))

		r.Get("/users/details", userHandler.Details)

		r.Post("/upload-photo", handler.NewUploadHandler(deps.Gateway).ServeHTTP)

		productHandler := handler.NewProductHandler(deps.ProductRepo)
		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.Create)
			r.Get("/", productHandler.List)
			r.Get("/today", productHandler.ListToday)
			r.Get("/{id}", productHandler.GetByID)
			r.Delete("/{id}", productHandler.Delete)
		})
	})

	return r
}
