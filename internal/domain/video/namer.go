package video

import (
	"fmt"

	"github.com/google/uuid"
)

// CanonicalExt is the container every stored video is normalized to.
const CanonicalExt = "mp4"

const (
	videoPrefix     = "videos"
	thumbnailPrefix = "thumbnails"
)

// VideoKey returns the storage key for a video owned by an assigned
// identifier.
func VideoKey(id int64, ext string) string {
	return fmt.Sprintf("%s/%d.%s", videoPrefix, id, ext)
}

// TempVideoKey returns a storage key for incoming bytes that do not yet
// have an identifier. The random token keeps concurrent uploads from
// colliding; once the record is persisted, renames use VideoKey.
func TempVideoKey(ext string) string {
	return fmt.Sprintf("%s/temp_%s.%s", videoPrefix, uuid.New().String()[:8], ext)
}

// ThumbnailKey returns the storage key for a video's thumbnail. A
// thumbnail only ever exists for a persisted record, so it is always
// keyed by identifier.
func ThumbnailKey(id int64) string {
	return fmt.Sprintf("%s/%d.jpg", thumbnailPrefix, id)
}
