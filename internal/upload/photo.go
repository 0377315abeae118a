package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrMissingImage is returned when the upload payload carries no image.
var ErrMissingImage = errors.New("missing base64Image")

// ErrInvalidImage is returned when the payload is not decodable base64.
var ErrInvalidImage = errors.New("invalid base64 image payload")

// DecodeImage decodes a base64 image payload, stripping an optional
// data-URL prefix ("data:image/jpeg;base64,...") first.
func DecodeImage(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrMissingImage
	}

	if strings.HasPrefix(payload, "data:") {
		_, after, found := strings.Cut(payload, ",")
		if !found {
			return nil, ErrInvalidImage
		}
		payload = after
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return data, nil
}

// PhotoStore persists uploaded photos under a dedicated directory. The
// directory is shared append-only; writers never read each other's files.
type PhotoStore struct {
	dir string
	now func() time.Time
}

// NewPhotoStore creates a PhotoStore rooted at dir.
func NewPhotoStore(dir string) *PhotoStore {
	return &PhotoStore{dir: dir, now: time.Now}
}

// Save writes the image bytes to a deterministically named file:
// {userId}_{HHMMSS}-{yyMMdd}.jpg. Two uploads by the same user within the
// same wall-clock second overwrite each other; that collision window is an
// accepted part of the naming contract.
func (s *PhotoStore) Save(userID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating photo directory: %w", err)
	}

	now := s.now()
	name := fmt.Sprintf("%s_%s-%s.jpg", userID, now.Format("150405"), now.Format("060102"))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing photo file: %w", err)
	}

	return path, nil
}
