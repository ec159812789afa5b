package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rotem123456/recipe-app-api/internal/model"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a gorm-backed RecipeRepository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) ListByOwner(ctx context.Context, ownerID uint, filter RecipeFilter) ([]model.Recipe, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("recipes.owner_id = ?", ownerID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}
	if len(filter.TagIDs) > 0 || len(filter.IngredientIDs) > 0 {
		query = query.Distinct("recipes.*")
	}

	var recipes []model.Recipe
	result := query.
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes)
	if result.Error != nil {
		return nil, result.Error
	}
	return recipes, nil
}

func (r *recipeRepository) GetByOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	result := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("owner_id = ?", ownerID).
		First(&recipe, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update persists scalar fields only; tag and ingredient relations are
// managed through ReplaceTags/ReplaceIngredients.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(tags); err != nil {
		return err
	}
	recipe.Tags = tags
	return nil
}

func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(ingredients); err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	return nil
}

// DeleteByOwner removes the recipe and its join rows. The ownership check
// happens before the delete so a foreign recipe id reports ErrNotFound
// without touching anything.
func (r *recipeRepository) DeleteByOwner(ctx context.Context, ownerID, id uint) error {
	var recipe model.Recipe
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&recipe, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return result.Error
	}

	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&recipe).Error
}
