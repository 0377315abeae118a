// Package inference wraps the external OCR/ML process that reads a saved
// photo and extracts nutrition facts from it.
package inference

import (
	"context"
	"errors"
	"strings"

	"github.com/nutrigood/nutrigood-backend/internal/user"
)

// ErrProcessFailed is returned when the external process exits nonzero.
var ErrProcessFailed = errors.New("inference process failed")

// ErrBadOutput is returned when the process exits zero but its stdout does
// not contain a decodable result.
var ErrBadOutput = errors.New("failed to parse script output")

// ErrTimeout is returned when the process does not finish within the
// configured deadline.
var ErrTimeout = errors.New("inference timed out")

// Result is the parsed outcome of one inference run.
type Result struct {
	Message   string            `json:"message"`
	Nutrition map[string]string `json:"nutrition_info"`
}

// NoMatch reports whether the result is the well-known no-result outcome:
// the script completed but found no nutrition label in the image. This is a
// valid empty result, not an error.
func (r *Result) NoMatch() bool {
	msg := strings.ToLower(strings.TrimSpace(r.Message))
	return strings.Contains(msg, "not found") || msg == "tidak ditemukan"
}

// Runner runs inference on a saved photo for a user with the given traits.
// The concrete child-process implementation is one swappable adapter;
// tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, imagePath string, attrs user.Attributes) (*Result, error)
}
