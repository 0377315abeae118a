// Package response writes the uniform JSON envelope every endpoint speaks:
// {status: "success"|"fail", message?, data?}. The HTTP status code is
// authoritative; the message is descriptive only.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// StatusSuccess and StatusFail are the only valid envelope statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes an arbitrary JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success writes a success envelope carrying data.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Status: StatusSuccess, Data: data})
}

// SuccessMessage writes a success envelope carrying a message and,
// optionally, data.
func SuccessMessage(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail writes a fail envelope carrying a message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: StatusFail, Message: message})
}
