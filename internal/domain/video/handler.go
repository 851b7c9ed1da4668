package video

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ev-g-hash/polyvideos/internal/pkg/response"
)

const (
	defaultPageSize           = 6
	maxPageSize               = 50
	missingThumbnailListLimit = 10
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List videos, newest first
// @Tags Videos
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /videos [get]
func (h *Handler) List(c *gin.Context) {
	limit := defaultPageSize
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			limit = n
		}
	}

	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	offset := (page - 1) * limit

	videos, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list videos")
		return
	}

	totalPages := (int(total) + limit - 1) / limit

	response.Success(c, http.StatusOK, gin.H{
		"videos": toResponseList(videos),
		"pagination": gin.H{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

// Detail godoc
// @Summary Get one video
// @Description Returns the record; generates a missing thumbnail on demand.
// @Tags Videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /videos/{id} [get]
func (h *Handler) Detail(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	v, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(v))
}

// Upload godoc
// @Summary Upload a video (admin only)
// @Description Stores the file, normalizes it to MP4 and derives a thumbnail inline.
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "Video file"
// @Param title formData string false "Title (defaults to the filename)"
// @Param description formData string false "Description"
// @Param duration formData string false "Duration label, e.g. 3:45"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401,403,413 {object} map[string]interface{}
// @Router /videos [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "Please select a video file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_FILE", "Could not read uploaded file")
		return
	}
	defer file.Close()

	v, err := h.service.Ingest(c.Request.Context(), IngestInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    c.PostForm("duration"),
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		Data:        file,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(v))
}

// UpdateField godoc
// @Summary Edit one text field of a video (admin only)
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param body body UpdateFieldRequest true "Field and new value"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,404 {object} map[string]interface{}
// @Router /videos/{id} [patch]
func (h *Handler) UpdateField(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "field is required")
		return
	}

	if err := h.service.UpdateField(c.Request.Context(), id, req.Field, req.Value); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "updated"})
}

// Delete godoc
// @Summary Delete a video and its stored files (admin only)
// @Tags Videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401,403,404 {object} map[string]interface{}
// @Router /videos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}

// GenerateThumbnail godoc
// @Summary Regenerate a video thumbnail on demand (admin only)
// @Tags Videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401,403,404,500 {object} map[string]interface{}
// @Router /videos/{id}/thumbnail [post]
func (h *Handler) GenerateThumbnail(c *gin.Context) {
	id, ok := videoID(c)
	if !ok {
		return
	}

	v, err := h.service.GenerateThumbnail(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	if !v.HasThumbnail() {
		response.Error(c, http.StatusInternalServerError, "THUMBNAIL_FAILED",
			"Could not create thumbnail. Check that ffmpeg is installed.")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thumbnail_url": URLPath(*v.ThumbnailPath)})
}

// MissingThumbnails godoc
// @Summary List recent videos without a thumbnail (admin only)
// @Tags Videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /thumbnails/missing [get]
func (h *Handler) MissingThumbnails(c *gin.Context) {
	videos, err := h.service.ListMissingThumbnails(c.Request.Context(), missingThumbnailListLimit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list videos")
		return
	}
	response.Success(c, http.StatusOK, toResponseList(videos))
}

func videoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid video ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrVideoNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Video not found")
	case errors.Is(err, ErrTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size must not exceed 500MB")
	case errors.Is(err, ErrUnsupportedFormat):
		response.ErrorWithDetails(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT",
			"Invalid file format", gin.H{"allowed_formats": AllowedExtensionList()})
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
	case errors.Is(err, ErrUnsupportedField):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FIELD", "Field cannot be edited")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
