package video

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

const thumbnailJPEGQuality = 85

// Thumbnailer produces a preview image for a stored video. It is an
// interface so the ingest service can be tested with a counting fake.
type Thumbnailer interface {
	// Extract writes a JPEG thumbnail for the video at srcKey under the
	// record's thumbnail key and returns that key. Errors are soft for
	// callers: the record keeps no thumbnail reference and the pipeline
	// continues.
	Extract(ctx context.Context, id int64, srcKey string) (string, error)
}

// FrameExtractor asks ffmpeg for the frame at the one-second mark,
// scaled to 480 px width with the height following the aspect ratio,
// then re-encodes the result through the imaging library so every
// thumbnail ends up as a plain RGB JPEG at a fixed quality.
type FrameExtractor struct {
	ffmpeg Runner
	store  Store
}

func NewFrameExtractor(ffmpeg Runner, store Store) *FrameExtractor {
	return &FrameExtractor{ffmpeg: ffmpeg, store: store}
}

func (t *FrameExtractor) Extract(ctx context.Context, id int64, srcKey string) (string, error) {
	if !t.store.Exists(srcKey) {
		return "", fmt.Errorf("video file missing: %s", srcKey)
	}

	if err := t.ffmpeg.Available(); err != nil {
		return "", err
	}

	dstKey := ThumbnailKey(id)
	dstPath := t.store.Path(dstKey)

	// Seeking before -i is fast; ffmpeg clamps the offset for clips
	// shorter than a second.
	out, err := t.ffmpeg.Run(ctx,
		"-ss", "1",
		"-i", t.store.Path(srcKey),
		"-frames:v", "1",
		"-vf", "scale=480:-2",
		"-q:v", "2",
		"-y", dstPath,
	)
	if err != nil {
		_ = t.store.Remove(dstKey)
		return "", err
	}

	if !t.store.Exists(dstKey) {
		return "", fmt.Errorf("%w: %s", ErrNoFrame, out)
	}

	// Normalize color mode and quality regardless of what ffmpeg wrote.
	img, err := imaging.Open(dstPath)
	if err != nil {
		_ = t.store.Remove(dstKey)
		return "", fmt.Errorf("%w: %v", ErrNoFrame, err)
	}
	if err := imaging.Save(img, dstPath, imaging.JPEGQuality(thumbnailJPEGQuality)); err != nil {
		_ = t.store.Remove(dstKey)
		return "", fmt.Errorf("encode thumbnail %s: %w", dstKey, err)
	}

	return dstKey, nil
}
