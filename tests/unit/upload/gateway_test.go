package upload_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrigood/nutrigood-backend/internal/inference"
	"github.com/nutrigood/nutrigood-backend/internal/upload"
	"github.com/nutrigood/nutrigood-backend/internal/user"
)

// --- Mocks ---

type mockUserRepo struct {
	getAttributesFn func(ctx context.Context, id string) (*user.Attributes, error)
}

func (m *mockUserRepo) Create(_ context.Context, _ *user.User) error { return nil }

func (m *mockUserRepo) GetByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetAttributes(ctx context.Context, id string) (*user.Attributes, error) {
	if m.getAttributesFn != nil {
		return m.getAttributesFn(ctx, id)
	}
	return &user.Attributes{Age: 20, Weight: 60, Diabetes: "No"}, nil
}

type recordingRunner struct {
	imagePath string
	attrs     user.Attributes
	calls     int
}

func (r *recordingRunner) Run(_ context.Context, imagePath string, attrs user.Attributes) (*inference.Result, error) {
	r.calls++
	r.imagePath = imagePath
	r.attrs = attrs
	return &inference.Result{Message: "ok", Nutrition: map[string]string{}}, nil
}

// --- DecodeImage ---

func TestDecodeImage_RawBase64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))

	data, err := upload.DecodeImage(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestDecodeImage_DataURLPrefix(t *testing.T) {
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("image bytes"))

	data, err := upload.DecodeImage(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestDecodeImage_Empty(t *testing.T) {
	_, err := upload.DecodeImage("")
	assert.ErrorIs(t, err, upload.ErrMissingImage)
}

func TestDecodeImage_NotBase64(t *testing.T) {
	_, err := upload.DecodeImage("!!! definitely not base64 !!!")
	assert.ErrorIs(t, err, upload.ErrInvalidImage)
}

func TestDecodeImage_DataURLWithoutComma(t *testing.T) {
	_, err := upload.DecodeImage("data:image/jpeg;base64")
	assert.ErrorIs(t, err, upload.ErrInvalidImage)
}

// --- PhotoStore ---

func TestPhotoStore_SaveCreatesDirAndNamesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "photos")
	store := upload.NewPhotoStore(dir)

	path, err := store.Save("user-123", []byte("image bytes"))
	require.NoError(t, err)

	assert.Regexp(t, `user-123_\d{6}-\d{6}\.jpg$`, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestPhotoStore_SameSecondOverwrites(t *testing.T) {
	store := upload.NewPhotoStore(t.TempDir())

	// Same user, same wall-clock second: the second write wins. This
	// collision window is part of the naming contract.
	p1, err := store.Save("user-123", []byte("first"))
	require.NoError(t, err)
	p2, err := store.Save("user-123", []byte("second"))
	require.NoError(t, err)

	if p1 == p2 {
		data, err := os.ReadFile(p2)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)
	}
}

// --- Gateway ---

func TestGateway_ProcessRunsInferenceOnSavedFile(t *testing.T) {
	dir := t.TempDir()
	runner := &recordingRunner{}
	gw := upload.NewGateway(upload.NewPhotoStore(dir), &mockUserRepo{}, runner)

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	result, err := gw.Process(context.Background(), "user-123", payload)
	require.NoError(t, err)

	assert.Equal(t, "ok", result.Message)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, user.Attributes{Age: 20, Weight: 60, Diabetes: "No"}, runner.attrs)

	// The runner sees the path of the file that was actually written.
	data, err := os.ReadFile(runner.imagePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}

func TestGateway_MissingImageSkipsEverything(t *testing.T) {
	dir := t.TempDir()
	runner := &recordingRunner{}
	fetches := 0
	repo := &mockUserRepo{
		getAttributesFn: func(_ context.Context, _ string) (*user.Attributes, error) {
			fetches++
			return &user.Attributes{}, nil
		},
	}
	gw := upload.NewGateway(upload.NewPhotoStore(dir), repo, runner)

	_, err := gw.Process(context.Background(), "user-123", "")
	assert.ErrorIs(t, err, upload.ErrMissingImage)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no file may be written")
	assert.Zero(t, runner.calls)
	assert.Zero(t, fetches)
}

func TestGateway_MissingAttributesIsIntegrityFailure(t *testing.T) {
	repo := &mockUserRepo{
		getAttributesFn: func(_ context.Context, _ string) (*user.Attributes, error) {
			return nil, user.ErrUserNotFound
		},
	}
	runner := &recordingRunner{}
	gw := upload.NewGateway(upload.NewPhotoStore(t.TempDir()), repo, runner)

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	_, err := gw.Process(context.Background(), "ghost", payload)

	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Zero(t, runner.calls, "inference must not run without user attributes")
}

func TestGateway_AttributeFetchErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &mockUserRepo{
		getAttributesFn: func(_ context.Context, _ string) (*user.Attributes, error) {
			return nil, storeErr
		},
	}
	gw := upload.NewGateway(upload.NewPhotoStore(t.TempDir()), repo, &recordingRunner{})

	payload := base64.StdEncoding.EncodeToString([]byte("image bytes"))
	_, err := gw.Process(context.Background(), "user-123", payload)

	assert.ErrorIs(t, err, storeErr)
}
