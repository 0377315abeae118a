// Package upload orchestrates the photo-upload/inference pipeline: decode
// the payload, persist the photo, fetch the owner's traits and hand both to
// the external inference process.
package upload

import (
	"context"
	"fmt"

	"github.com/nutrigood/nutrigood-backend/internal/inference"
	"github.com/nutrigood/nutrigood-backend/internal/user"
)

// Gateway runs one upload request end to end.
type Gateway struct {
	photos *PhotoStore
	users  user.Repository
	runner inference.Runner
}

// NewGateway creates a new upload Gateway.
func NewGateway(photos *PhotoStore, users user.Repository, runner inference.Runner) *Gateway {
	return &Gateway{photos: photos, users: users, runner: runner}
}

// Process decodes and persists the image, fetches the user's stored traits
// and invokes the inference runner. The attribute fetch has no dependency on
// the file write, so the two run concurrently; both must complete before the
// runner is invoked, since the process reads the file by path.
//
// A missing user row for an authenticated identity is a data-integrity
// failure, not a 404: the token was only ever issued for a stored user.
func (g *Gateway) Process(ctx context.Context, userID, base64Image string) (*inference.Result, error) {
	data, err := DecodeImage(base64Image)
	if err != nil {
		return nil, err
	}

	type attrsResult struct {
		attrs *user.Attributes
		err   error
	}
	attrsCh := make(chan attrsResult, 1)
	go func() {
		a, err := g.users.GetAttributes(ctx, userID)
		attrsCh <- attrsResult{attrs: a, err: err}
	}()

	path, err := g.photos.Save(userID, data)
	if err != nil {
		<-attrsCh
		return nil, fmt.Errorf("saving photo: %w", err)
	}

	ar := <-attrsCh
	if ar.err != nil {
		return nil, fmt.Errorf("fetching user attributes: %w", ar.err)
	}

	return g.runner.Run(ctx, path, *ar.attrs)
}
