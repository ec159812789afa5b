package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rotem123456/recipe-app-api/internal/model"
)

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a gorm-backed TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name DESC").
		Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

func (r *tagRepository) GetByOwner(ctx context.Context, ownerID, id uint) (*model.Tag, error) {
	var tag model.Tag
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&tag, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &tag, nil
}

func (r *tagRepository) FindByOwnerAndIDs(ctx context.Context, ownerID uint, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) DeleteByOwner(ctx context.Context, ownerID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
