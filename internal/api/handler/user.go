package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nutrigood/nutrigood-backend/internal/api/middleware"
	"github.com/nutrigood/nutrigood-backend/internal/api/response"
	"github.com/nutrigood/nutrigood-backend/internal/api/validation"
	"github.com/nutrigood/nutrigood-backend/internal/auth"
	"github.com/nutrigood/nutrigood-backend/internal/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Age      *int   `json:"age"`
	Weight   *int   `json:"bb"`
	Diabetes string `json:"diabetes"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userDetailsResponse is returned bare, without the envelope: the mobile
// client's profile screen decodes exactly this shape.
type userDetailsResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserHandler handles registration, login and profile details.
type UserHandler struct {
	authService *auth.Service
	userRepo    user.Repository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *auth.Service, userRepo user.Repository) *UserHandler {
	return &UserHandler{authService: authService, userRepo: userRepo}
}

// Register handles POST /users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, validation.MsgMissingFields)
		return
	}

	if msg := validation.ValidateRegisterRequest(validation.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Age:      req.Age,
		Weight:   req.Weight,
		Diabetes: req.Diabetes,
	}); msg != "" {
		response.Fail(w, http.StatusBadRequest, msg)
		return
	}

	userID, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Age:      *req.Age,
		Weight:   *req.Weight,
		Diabetes: validation.NormalizeDiabetes(req.Diabetes),
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUser) {
			response.Fail(w, http.StatusConflict, "User already exists")
			return
		}
		slog.Error("failed to register user", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.SuccessMessage(w, http.StatusCreated, "User registered successfully",
		map[string]string{"userId": userID})
}

// Login handles POST /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.Fail(w, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidPassword):
			response.Fail(w, http.StatusUnauthorized, "Invalid password")
		default:
			slog.Error("failed to login user", "error", err, "requestId", middleware.GetRequestID(r.Context()))
			response.Fail(w, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	response.SuccessMessage(w, http.StatusOK, "Login successful",
		map[string]string{"token": token})
}

// Details handles GET /users/details.
func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	u, err := h.userRepo.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Fail(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to fetch user details", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Fail(w, http.StatusInternalServerError, "Failed to fetch user details")
		return
	}

	response.JSON(w, http.StatusOK, userDetailsResponse{
		Username: u.Name,
		Email:    u.Email,
	})
}
