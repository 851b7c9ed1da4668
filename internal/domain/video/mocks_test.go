package video

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/mock"
)

// fakeRunner stands in for the ffmpeg binary. onRun receives the full
// argument list and typically writes the output file (the last arg),
// mimicking a successful invocation.
type fakeRunner struct {
	availableErr error
	calls        int
	onRun        func(args []string) ([]byte, error)
}

func (f *fakeRunner) Available() error { return f.availableErr }

func (f *fakeRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	f.calls++
	if f.onRun != nil {
		return f.onRun(args)
	}
	return nil, nil
}

func unavailableRunner(reason string) *fakeRunner {
	return &fakeRunner{availableErr: fmt.Errorf("%w: %s", ErrToolUnavailable, reason)}
}

// writeFileRun returns an onRun writing content at the output path,
// which ffmpeg-style invocations pass as the final argument.
func writeFileRun(content []byte) func(args []string) ([]byte, error) {
	return func(args []string) ([]byte, error) {
		return nil, os.WriteFile(args[len(args)-1], content, 0644)
	}
}

// writeJPEGRun returns an onRun that writes a real decodable JPEG at the
// output path, for the thumbnail flow which re-opens the file.
func writeJPEGRun() func(args []string) ([]byte, error) {
	return func(args []string) ([]byte, error) {
		img := imaging.New(480, 270, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
		return nil, imaging.Save(img, args[len(args)-1])
	}
}

// countingThumbnailer records Extract invocations for idempotence tests.
type countingThumbnailer struct {
	calls int
	key   string
	err   error
	store Store
}

func (t *countingThumbnailer) Extract(ctx context.Context, id int64, srcKey string) (string, error) {
	t.calls++
	if t.err != nil {
		return "", t.err
	}
	key := t.key
	if key == "" {
		key = ThumbnailKey(id)
	}
	if t.store != nil {
		img := imaging.New(480, 270, color.NRGBA{A: 255})
		if err := imaging.Save(img, t.store.Path(key)); err != nil {
			return "", err
		}
	}
	return key, nil
}

// stubNormalizer is a FormatNormalizer with canned behavior.
type stubNormalizer struct {
	key   string
	err   error
	calls int
}

func (n *stubNormalizer) Normalize(ctx context.Context, id int64, srcKey, ext string) (string, error) {
	n.calls++
	if n.err != nil {
		return "", n.err
	}
	return n.key, nil
}

// MockRepository is a testify mock over the metadata store boundary.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, v *Video) error {
	args := m.Called(ctx, v)
	if v != nil && v.ID == 0 {
		v.ID = 1 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Video), args.Error(1)
}

func (m *MockRepository) UpdateVideoPath(ctx context.Context, id int64, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockRepository) UpdateThumbnailPath(ctx context.Context, id int64, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockRepository) UpdateField(ctx context.Context, id int64, field, value string) error {
	args := m.Called(ctx, id, field, value)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]*Video, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ListMissingThumbnails(ctx context.Context, limit int) ([]*Video, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Video), args.Error(1)
}
