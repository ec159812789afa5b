package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rotem123456/recipe-app-api/internal/model"
)

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a gorm-backed IngredientRepository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name DESC").
		Find(&ingredients)
	if result.Error != nil {
		return nil, result.Error
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByOwner(ctx context.Context, ownerID, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&ingredient, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByOwnerAndIDs(ctx context.Context, ownerID uint, ids []uint) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []model.Ingredient
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&ingredients)
	if result.Error != nil {
		return nil, result.Error
	}
	return ingredients, nil
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) DeleteByOwner(ctx context.Context, ownerID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&model.Ingredient{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
