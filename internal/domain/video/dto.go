package video

import "time"

// VideoResponse is the wire shape for a single record. URLs point under
// the static media mount.
type VideoResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Duration       string    `json:"duration"`
	OriginalFormat string    `json:"original_format"`
	VideoURL       string    `json:"video_url"`
	ThumbnailURL   *string   `json:"thumbnail_url"`
	CreatedAt      time.Time `json:"created_at"`
}

func toResponse(v *Video) VideoResponse {
	resp := VideoResponse{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		Duration:       v.Duration,
		OriginalFormat: v.OriginalFormat,
		VideoURL:       URLPath(v.VideoPath),
		CreatedAt:      v.CreatedAt,
	}
	if v.HasThumbnail() {
		u := URLPath(*v.ThumbnailPath)
		resp.ThumbnailURL = &u
	}
	return resp
}

func toResponseList(videos []*Video) []VideoResponse {
	items := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		items = append(items, toResponse(v))
	}
	return items
}

// UpdateFieldRequest edits a single free-text field.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}
