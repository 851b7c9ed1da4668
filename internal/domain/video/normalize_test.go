package video

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeKeyContent(t *testing.T, store *DiskStore, key string) string {
	t.Helper()
	f, err := store.Open(key)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func TestNormalizeCanonicalExtIsNoOp(t *testing.T) {
	store := newTestStore(t)
	runner := &fakeRunner{}
	norm := NewNormalizer(runner, store)

	_, err := store.Write("videos/temp_aa.mp4", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	newKey, err := norm.Normalize(context.Background(), 3, "videos/temp_aa.mp4", "mp4")
	require.NoError(t, err)
	assert.Empty(t, newKey)
	assert.Zero(t, runner.calls, "ffmpeg must not run for canonical uploads")
	assert.Equal(t, "original", storeKeyContent(t, store, "videos/temp_aa.mp4"))
}

func TestNormalizeToolUnavailable(t *testing.T) {
	store := newTestStore(t)
	norm := NewNormalizer(unavailableRunner("ffmpeg not in PATH"), store)

	_, err := store.Write("videos/temp_bb.mov", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	newKey, err := norm.Normalize(context.Background(), 4, "videos/temp_bb.mov", "mov")
	assert.ErrorIs(t, err, ErrToolUnavailable)
	assert.Empty(t, newKey)
	assert.Equal(t, "original", storeKeyContent(t, store, "videos/temp_bb.mov"))
}

func TestNormalizeSuccess(t *testing.T) {
	store := newTestStore(t)
	runner := &fakeRunner{onRun: writeFileRun([]byte("transcoded"))}
	norm := NewNormalizer(runner, store)

	_, err := store.Write("videos/temp_cc.mov", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	newKey, err := norm.Normalize(context.Background(), 7, "videos/temp_cc.mov", "mov")
	require.NoError(t, err)
	assert.Equal(t, "videos/7.mp4", newKey)
	assert.Equal(t, 1, runner.calls)

	assert.False(t, store.Exists("videos/7.tmp.mp4"), "temp output must be renamed away")
	assert.Equal(t, "transcoded", storeKeyContent(t, store, "videos/7.mp4"))

	// The original is the caller's to remove once the new key is
	// persisted on the record.
	assert.Equal(t, "original", storeKeyContent(t, store, "videos/temp_cc.mov"))
}

func TestNormalizeToolFailureKeepsOriginal(t *testing.T) {
	store := newTestStore(t)
	runner := &fakeRunner{onRun: func(args []string) ([]byte, error) {
		return []byte("codec error"), &ToolError{Tool: "ffmpeg", Output: []byte("codec error"), Err: errors.New("exit status 1")}
	}}
	norm := NewNormalizer(runner, store)

	_, err := store.Write("videos/temp_dd.avi", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	newKey, err := norm.Normalize(context.Background(), 9, "videos/temp_dd.avi", "avi")
	require.Error(t, err)
	assert.Empty(t, newKey)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "codec error", string(toolErr.Output))

	assert.Equal(t, "original", storeKeyContent(t, store, "videos/temp_dd.avi"))
	assert.False(t, store.Exists("videos/9.mp4"))
}

func TestNormalizeMissingOutputKeepsOriginal(t *testing.T) {
	store := newTestStore(t)
	// Tool exits 0 but never writes the output file.
	runner := &fakeRunner{onRun: func(args []string) ([]byte, error) { return nil, nil }}
	norm := NewNormalizer(runner, store)

	_, err := store.Write("videos/temp_ee.webm", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	newKey, err := norm.Normalize(context.Background(), 11, "videos/temp_ee.webm", "webm")
	require.Error(t, err)
	assert.Empty(t, newKey)
	assert.Equal(t, "original", storeKeyContent(t, store, "videos/temp_ee.webm"))
}

func TestNormalizeArgumentProfile(t *testing.T) {
	store := newTestStore(t)
	var captured []string
	runner := &fakeRunner{onRun: func(args []string) ([]byte, error) {
		captured = args
		return nil, os.WriteFile(args[len(args)-1], []byte("x"), 0644)
	}}
	norm := NewNormalizer(runner, store)

	_, err := store.Write("videos/temp_ff.mkv", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	_, err = norm.Normalize(context.Background(), 2, "videos/temp_ff.mkv", "mkv")
	require.NoError(t, err)

	joined := strings.Join(captured, " ")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-preset fast")
	assert.Contains(t, joined, "-crf 23")
	assert.Contains(t, joined, "-c:a aac")
	assert.Contains(t, joined, "-b:a 128k")
	assert.Contains(t, joined, "-movflags +faststart")
}
