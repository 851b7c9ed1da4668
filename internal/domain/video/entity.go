package video

import "time"

// Video is the persisted record for one gallery entry. VideoPath and
// ThumbnailPath are storage keys relative to the media root, never
// absolute filesystem paths.
type Video struct {
	ID            int64     `gorm:"column:id;primaryKey" json:"id"`
	Title         string    `gorm:"column:title" json:"title"`
	Description   string    `gorm:"column:description" json:"description"`
	VideoPath     string    `gorm:"column:video_path" json:"-"`
	ThumbnailPath *string   `gorm:"column:thumbnail_path" json:"-"`
	// Duration is a display label supplied by the uploader ("3:45"),
	// not probed from the file.
	Duration       string    `gorm:"column:duration" json:"duration"`
	OriginalFormat string    `gorm:"column:original_format" json:"original_format"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Video) TableName() string { return "videos" }

// HasThumbnail reports whether the record carries a thumbnail reference.
func (v *Video) HasThumbnail() bool {
	return v.ThumbnailPath != nil && *v.ThumbnailPath != ""
}
