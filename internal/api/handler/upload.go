package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nutrigood/nutrigood-backend/internal/api/middleware"
	"github.com/nutrigood/nutrigood-backend/internal/api/response"
	"github.com/nutrigood/nutrigood-backend/internal/inference"
	"github.com/nutrigood/nutrigood-backend/internal/upload"
)

type uploadRequest struct {
	Base64Image string `json:"base64Image"`
}

type uploadData struct {
	Message   string            `json:"message"`
	Nutrition map[string]string `json:"nutrition_info,omitempty"`
}

// UploadHandler handles POST /upload-photo.
type UploadHandler struct {
	gateway *upload.Gateway
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(gateway *upload.Gateway) *UploadHandler {
	return &UploadHandler{gateway: gateway}
}

// ServeHTTP accepts a base64 image, runs the inference pipeline and maps
// its failure taxonomy onto the response envelope. Diagnostic detail stays
// in the server log; clients only ever see the fixed phrases.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, http.StatusBadRequest, "Missing base64Image")
		return
	}

	result, err := h.gateway.Process(r.Context(), identity.UserID, req.Base64Image)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		switch {
		case errors.Is(err, upload.ErrMissingImage):
			response.Fail(w, http.StatusBadRequest, "Missing base64Image")
		case errors.Is(err, upload.ErrInvalidImage):
			response.Fail(w, http.StatusBadRequest, "Invalid base64Image")
		case errors.Is(err, inference.ErrTimeout):
			slog.Error("inference timed out", "userId", identity.UserID, "requestId", requestID)
			response.Fail(w, http.StatusGatewayTimeout, "Image processing timed out")
		case errors.Is(err, inference.ErrBadOutput):
			slog.Error("inference output unparsable", "error", err, "requestId", requestID)
			response.Fail(w, http.StatusInternalServerError, "Failed to parse script output")
		default:
			slog.Error("failed to process upload", "error", err, "userId", identity.UserID, "requestId", requestID)
			response.Fail(w, http.StatusInternalServerError, "Failed to process image")
		}
		return
	}

	data := uploadData{Message: result.Message}
	if !result.NoMatch() {
		data.Nutrition = result.Nutrition
	}

	response.Success(w, http.StatusCreated, data)
}
