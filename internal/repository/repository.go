// Package repository contains the data-access layer. Every read or write
// that touches user-owned rows takes the owner's user ID explicitly, so a
// query can never silently escape its tenant scope. A row that exists but
// belongs to another user is indistinguishable from a missing row: both
// surface as ErrNotFound.
package repository

import (
	"context"
	"errors"

	"github.com/rotem123456/recipe-app-api/internal/model"
)

// ErrNotFound is returned when a row does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("record not found")

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// TagRepository persists tags, scoped to their owner.
type TagRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Tag, error)
	GetByOwner(ctx context.Context, ownerID, id uint) (*model.Tag, error)
	FindByOwnerAndIDs(ctx context.Context, ownerID uint, ids []uint) ([]model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	DeleteByOwner(ctx context.Context, ownerID, id uint) error
}

// IngredientRepository persists ingredients, scoped to their owner.
type IngredientRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Ingredient, error)
	GetByOwner(ctx context.Context, ownerID, id uint) (*model.Ingredient, error)
	FindByOwnerAndIDs(ctx context.Context, ownerID uint, ids []uint) ([]model.Ingredient, error)
	Create(ctx context.Context, ingredient *model.Ingredient) error
	Update(ctx context.Context, ingredient *model.Ingredient) error
	DeleteByOwner(ctx context.Context, ownerID, id uint) error
}

// RecipeFilter narrows a recipe list to recipes carrying the given
// tag/ingredient relations. Empty slices mean no filtering.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository persists recipes and their tag/ingredient relations,
// scoped to their owner.
type RecipeRepository interface {
	ListByOwner(ctx context.Context, ownerID uint, filter RecipeFilter) ([]model.Recipe, error)
	GetByOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
	DeleteByOwner(ctx context.Context, ownerID, id uint) error
}
