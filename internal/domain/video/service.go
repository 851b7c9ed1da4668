package video

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// FormatNormalizer converts stored bytes to the canonical playback
// format. Implemented by Normalizer; faked in service tests.
type FormatNormalizer interface {
	Normalize(ctx context.Context, id int64, srcKey, ext string) (string, error)
}

// Service sequences the ingest pipeline and owns all record-level
// operations. Every upload runs validate -> store -> normalize ->
// thumbnail synchronously on the request goroutine; the two derived
// steps are best-effort and never fail an upload that reached storage.
type Service struct {
	repo   Repository
	store  Store
	norm   FormatNormalizer
	thumbs Thumbnailer
	log    zerolog.Logger
}

func NewService(repo Repository, store Store, norm FormatNormalizer, thumbs Thumbnailer, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		norm:   norm,
		thumbs: thumbs,
		log:    log,
	}
}

// IngestInput is one incoming upload. Size is the declared byte count
// used for validation before anything is read from Data.
type IngestInput struct {
	Title       string
	Description string
	Duration    string
	Filename    string
	Size        int64
	Data        io.Reader
}

// Ingest runs the full upload pipeline. Validation failures are the
// only errors the caller sees before a record exists; once the bytes
// are stored and the record created, Ingest always returns that record,
// normalized and thumbnailed as far as the host allows.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (*Video, error) {
	ext, err := ValidateUpload(in.Filename, in.Size)
	if err != nil {
		return nil, err
	}

	// The identifier is only known after the first persist, so incoming
	// bytes land under a random temporary key.
	tempKey := TempVideoKey(ext)
	if _, err := s.store.Write(tempKey, in.Data); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	title := in.Title
	if title == "" {
		title = in.Filename
	}

	v := &Video{
		Title:          title,
		Description:    in.Description,
		Duration:       in.Duration,
		VideoPath:      tempKey,
		OriginalFormat: ext,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		_ = s.store.Remove(tempKey) // rollback file on DB error
		return nil, fmt.Errorf("create video record: %w", err)
	}

	s.normalize(ctx, v, ext)
	s.thumbnail(ctx, v)

	return v, nil
}

func (s *Service) normalize(ctx context.Context, v *Video, ext string) {
	newKey, err := s.norm.Normalize(ctx, v.ID, v.VideoPath, ext)
	if err != nil {
		s.logSoftFailure("normalize", v.ID, err)
		return
	}
	if newKey == "" {
		return // already canonical
	}

	// The record must never reference missing bytes: the new key is
	// persisted first, and the original removed only after that sticks.
	// On a persist failure the normalized copy is discarded instead.
	if err := s.repo.UpdateVideoPath(ctx, v.ID, newKey); err != nil {
		s.log.Error().Int64("video_id", v.ID).Err(err).Msg("persist normalized path")
		_ = s.store.Remove(newKey)
		return
	}

	oldKey := v.VideoPath
	v.VideoPath = newKey
	if err := s.store.Remove(oldKey); err != nil {
		s.log.Warn().Int64("video_id", v.ID).Str("key", oldKey).Err(err).Msg("remove pre-normalization bytes")
	}
}

func (s *Service) thumbnail(ctx context.Context, v *Video) {
	key, err := s.thumbs.Extract(ctx, v.ID, v.VideoPath)
	if err != nil {
		s.logSoftFailure("thumbnail", v.ID, err)
		return
	}

	if err := s.repo.UpdateThumbnailPath(ctx, v.ID, key); err != nil {
		s.log.Error().Int64("video_id", v.ID).Err(err).Msg("persist thumbnail path")
		return
	}
	v.ThumbnailPath = &key
}

// logSoftFailure records a skipped derived-asset step. Missing tools log
// at warn, execution failures at error with the tool's output attached.
func (s *Service) logSoftFailure(step string, id int64, err error) {
	var toolErr *ToolError
	switch {
	case errors.Is(err, ErrToolUnavailable):
		s.log.Warn().Int64("video_id", id).Err(err).Msgf("%s skipped: tool unavailable", step)
	case errors.As(err, &toolErr):
		s.log.Error().
			Int64("video_id", id).
			Err(err).
			Bytes("tool_output", toolErr.Output).
			Msgf("%s failed", step)
	default:
		s.log.Error().Int64("video_id", id).Err(err).Msgf("%s failed", step)
	}
}

// Get returns a single record.
func (s *Service) Get(ctx context.Context, id int64) (*Video, error) {
	return s.repo.GetByID(ctx, id)
}

// Detail returns a record for the public detail view, generating a
// missing thumbnail on demand the way the gallery always has.
func (s *Service) Detail(ctx context.Context, id int64) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.HasThumbnail() {
		return s.GenerateThumbnail(ctx, id)
	}
	return v, nil
}

// GenerateThumbnail creates a thumbnail for an existing record if one is
// not already present on storage. Extraction failures are soft: the
// returned record simply has no thumbnail reference.
func (s *Service) GenerateThumbnail(ctx context.Context, id int64) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := ThumbnailKey(id)
	if s.store.Exists(key) {
		// File already there; at most heal a lost reference.
		if !v.HasThumbnail() {
			if err := s.repo.UpdateThumbnailPath(ctx, id, key); err != nil {
				return nil, err
			}
			v.ThumbnailPath = &key
		}
		return v, nil
	}

	s.thumbnail(ctx, v)
	return v, nil
}

// List returns one page of records, newest first, with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Video, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListMissingThumbnails returns the most recent records that still have
// no thumbnail reference.
func (s *Service) ListMissingThumbnails(ctx context.Context, limit int) ([]*Video, error) {
	return s.repo.ListMissingThumbnails(ctx, limit)
}

// UpdateField edits one free-text field (title, description, duration).
func (s *Service) UpdateField(ctx context.Context, id int64, field, value string) error {
	return s.repo.UpdateField(ctx, id, field, value)
}

// Delete removes the stored bytes and the record. Byte removal is
// best-effort: files already gone do not block deletion.
func (s *Service) Delete(ctx context.Context, id int64) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(v.VideoPath); err != nil {
		s.log.Warn().Int64("video_id", id).Err(err).Msg("remove video bytes")
	}
	if v.HasThumbnail() {
		if err := s.store.Remove(*v.ThumbnailPath); err != nil {
			s.log.Warn().Int64("video_id", id).Err(err).Msg("remove thumbnail bytes")
		}
	}

	return s.repo.Delete(ctx, id)
}
