package video

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, v *Video) error
	GetByID(ctx context.Context, id int64) (*Video, error)
	UpdateVideoPath(ctx context.Context, id int64, path string) error
	UpdateThumbnailPath(ctx context.Context, id int64, path string) error
	UpdateField(ctx context.Context, id int64, field, value string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Video, int64, error)
	ListMissingThumbnails(ctx context.Context, limit int) ([]*Video, error)
}

// editableFields are the free-text columns an authorized edit may touch.
var editableFields = map[string]bool{
	"title":       true,
	"description": true,
	"duration":    true,
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Video, error) {
	var v Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) UpdateVideoPath(ctx context.Context, id int64, path string) error {
	return r.updateColumn(ctx, id, "video_path", path)
}

func (r *repository) UpdateThumbnailPath(ctx context.Context, id int64, path string) error {
	return r.updateColumn(ctx, id, "thumbnail_path", path)
}

func (r *repository) UpdateField(ctx context.Context, id int64, field, value string) error {
	if !editableFields[field] {
		return ErrUnsupportedField
	}
	return r.updateColumn(ctx, id, field, value)
}

func (r *repository) updateColumn(ctx context.Context, id int64, column, value string) error {
	res := r.db.WithContext(ctx).Model(&Video{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Video{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]*Video, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*Video
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	return videos, total, err
}

func (r *repository) ListMissingThumbnails(ctx context.Context, limit int) ([]*Video, error) {
	var videos []*Video
	err := r.db.WithContext(ctx).
		Where("thumbnail_path IS NULL OR thumbnail_path = ''").
		Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}
