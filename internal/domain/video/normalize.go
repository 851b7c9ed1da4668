package video

import (
	"context"
	"fmt"
)

// Normalizer re-encodes stored videos into the canonical web playback
// format: H.264 video and AAC audio in an MP4 container with the moov
// atom up front so playback can start before the download finishes.
type Normalizer struct {
	ffmpeg Runner
	store  Store
}

func NewNormalizer(ffmpeg Runner, store Store) *Normalizer {
	return &Normalizer{ffmpeg: ffmpeg, store: store}
}

// Normalize converts the bytes at srcKey into the canonical format and
// returns the new storage key. It returns ("", nil) when the original
// extension is already canonical. Callers treat any error as soft: the
// original bytes are left untouched on every failure path.
//
// Output goes to a temporary sibling key first and is renamed into place
// only after ffmpeg reports success and the output file exists, so a
// concurrent reader never sees a partially written canonical file. The
// original stays put; the caller removes it once the new key is
// persisted on the record, keeping the stored reference valid at every
// point.
func (n *Normalizer) Normalize(ctx context.Context, id int64, srcKey, ext string) (string, error) {
	if ext == CanonicalExt {
		return "", nil
	}

	if err := n.ffmpeg.Available(); err != nil {
		return "", err
	}

	// The temporary key keeps the .mp4 suffix so ffmpeg picks the
	// container format from the output path.
	dstKey := VideoKey(id, CanonicalExt)
	tmpKey := fmt.Sprintf("%s/%d.tmp.%s", videoPrefix, id, CanonicalExt)

	out, err := n.ffmpeg.Run(ctx,
		"-i", n.store.Path(srcKey),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", n.store.Path(tmpKey),
	)
	if err != nil {
		_ = n.store.Remove(tmpKey)
		return "", err
	}

	if !n.store.Exists(tmpKey) {
		return "", fmt.Errorf("transcode produced no output (%s): %s", tmpKey, out)
	}

	if err := n.store.Rename(tmpKey, dstKey); err != nil {
		_ = n.store.Remove(tmpKey)
		return "", err
	}

	return dstKey, nil
}
