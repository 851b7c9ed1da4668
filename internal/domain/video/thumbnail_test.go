package video

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameExtractorMissingVideo(t *testing.T) {
	store := newTestStore(t)
	extractor := NewFrameExtractor(&fakeRunner{}, store)

	_, err := extractor.Extract(context.Background(), 1, "videos/1.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestFrameExtractorToolUnavailable(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Write("videos/2.mp4", bytes.NewReader([]byte("video")))
	require.NoError(t, err)

	extractor := NewFrameExtractor(unavailableRunner("no ffmpeg"), store)

	_, err = extractor.Extract(context.Background(), 2, "videos/2.mp4")
	assert.ErrorIs(t, err, ErrToolUnavailable)
	assert.False(t, store.Exists(ThumbnailKey(2)))
}

func TestFrameExtractorSuccess(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Write("videos/3.mp4", bytes.NewReader([]byte("video")))
	require.NoError(t, err)

	runner := &fakeRunner{onRun: writeJPEGRun()}
	extractor := NewFrameExtractor(runner, store)

	key, err := extractor.Extract(context.Background(), 3, "videos/3.mp4")
	require.NoError(t, err)
	assert.Equal(t, "thumbnails/3.jpg", key)
	assert.True(t, store.Exists(key))

	// The re-encoded file must be a decodable image.
	img, err := imaging.Open(store.Path(key))
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
}

func TestFrameExtractorArgumentProfile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Write("videos/4.mov", bytes.NewReader([]byte("video")))
	require.NoError(t, err)

	var captured []string
	runner := &fakeRunner{onRun: func(args []string) ([]byte, error) {
		captured = args
		return writeJPEGRun()(args)
	}}
	extractor := NewFrameExtractor(runner, store)

	_, err = extractor.Extract(context.Background(), 4, "videos/4.mov")
	require.NoError(t, err)

	joined := strings.Join(captured, " ")
	assert.Contains(t, joined, "-ss 1")
	assert.Contains(t, joined, "-frames:v 1")
	assert.Contains(t, joined, "scale=480:-2")
}

func TestFrameExtractorNoFrameProduced(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Write("videos/5.mp4", bytes.NewReader([]byte("video")))
	require.NoError(t, err)

	// Exit 0 without writing an output: corrupt input short-circuits.
	runner := &fakeRunner{onRun: func(args []string) ([]byte, error) { return []byte("no frames"), nil }}
	extractor := NewFrameExtractor(runner, store)

	_, err = extractor.Extract(context.Background(), 5, "videos/5.mp4")
	assert.ErrorIs(t, err, ErrNoFrame)
}

func TestFrameExtractorUndecodableOutputRemoved(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Write("videos/6.mp4", bytes.NewReader([]byte("video")))
	require.NoError(t, err)

	runner := &fakeRunner{onRun: writeFileRun([]byte("not an image"))}
	extractor := NewFrameExtractor(runner, store)

	_, err = extractor.Extract(context.Background(), 6, "videos/6.mp4")
	assert.ErrorIs(t, err, ErrNoFrame)
	assert.False(t, store.Exists(ThumbnailKey(6)), "broken output must not be left behind")
}
