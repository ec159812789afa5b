package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
)

type mockRecipeRepo struct {
	listFunc              func(ctx context.Context, ownerID uint, filter repository.RecipeFilter) ([]model.Recipe, error)
	getFunc               func(ctx context.Context, ownerID, id uint) (*model.Recipe, error)
	createFunc            func(ctx context.Context, recipe *model.Recipe) error
	updateFunc            func(ctx context.Context, recipe *model.Recipe) error
	replaceTagsFunc       func(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	replaceIngredientFunc func(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
	deleteFunc            func(ctx context.Context, ownerID, id uint) error
}

func (m *mockRecipeRepo) ListByOwner(ctx context.Context, ownerID uint, filter repository.RecipeFilter) ([]model.Recipe, error) {
	return m.listFunc(ctx, ownerID, filter)
}

func (m *mockRecipeRepo) GetByOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	return m.getFunc(ctx, ownerID, id)
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	return m.createFunc(ctx, recipe)
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe *model.Recipe) error {
	return m.updateFunc(ctx, recipe)
}

func (m *mockRecipeRepo) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	return m.replaceTagsFunc(ctx, recipe, tags)
}

func (m *mockRecipeRepo) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	return m.replaceIngredientFunc(ctx, recipe, ingredients)
}

func (m *mockRecipeRepo) DeleteByOwner(ctx context.Context, ownerID, id uint) error {
	return m.deleteFunc(ctx, ownerID, id)
}

type mockTagRepo struct {
	findFunc func(ctx context.Context, ownerID uint, ids []uint) ([]model.Tag, error)
}

func (m *mockTagRepo) ListByOwner(ctx context.Context, ownerID uint) ([]model.Tag, error) {
	panic("not implemented")
}

func (m *mockTagRepo) GetByOwner(ctx context.Context, ownerID, id uint) (*model.Tag, error) {
	panic("not implemented")
}

func (m *mockTagRepo) FindByOwnerAndIDs(ctx context.Context, ownerID uint, ids []uint) ([]model.Tag, error) {
	return m.findFunc(ctx, ownerID, ids)
}

func (m *mockTagRepo) Create(ctx context.Context, tag *model.Tag) error { panic("not implemented") }

func (m *mockTagRepo) Update(ctx context.Context, tag *model.Tag) error { panic("not implemented") }

func (m *mockTagRepo) DeleteByOwner(ctx context.Context, ownerID, id uint) error {
	panic("not implemented")
}

func TestRecipeCreateRoundTrip(t *testing.T) {
	var created *model.Recipe
	recipes := &mockRecipeRepo{
		createFunc: func(ctx context.Context, recipe *model.Recipe) error {
			recipe.ID = 1
			created = recipe
			return nil
		},
	}
	h := NewRecipeHandler(recipes, &mockTagRepo{}, &mockIngredientRepo{})

	body := `{"title":"Avocado toast","price":"5.25","time_minutes":10,"description":"quick","link":"http://example.com/toast"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/recipes", body)
	authenticate(c, 2)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, created)
	assert.Equal(t, uint(2), created.OwnerID)
	assert.Equal(t, int64(525), created.PriceCents)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Avocado toast", out["title"])
	assert.Equal(t, "5.25", out["price"])
	assert.Equal(t, float64(10), out["time_minutes"])
	assert.Equal(t, "quick", out["description"])
	assert.Equal(t, "http://example.com/toast", out["link"])
}

func TestRecipeCreateRejectsForeignTagIDs(t *testing.T) {
	tags := &mockTagRepo{
		findFunc: func(ctx context.Context, ownerID uint, ids []uint) ([]model.Tag, error) {
			// Only one of the two requested ids belongs to this user
			return []model.Tag{{ID: 1, Name: "Vegan", OwnerID: ownerID}}, nil
		},
	}
	h := NewRecipeHandler(&mockRecipeRepo{}, tags, &mockIngredientRepo{})

	body := `{"title":"Salad","price":"4.00","tag_ids":[1,2]}`
	c, rec := newTestContext(t, http.MethodPost, "/api/recipes", body)
	authenticate(c, 2)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var out map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out, "tag_ids")
}

func TestRecipeCreateValidationErrorsPerField(t *testing.T) {
	h := NewRecipeHandler(&mockRecipeRepo{}, &mockTagRepo{}, &mockIngredientRepo{})

	body := `{"title":"","price":"1000.00","time_minutes":-1}`
	c, rec := newTestContext(t, http.MethodPost, "/api/recipes", body)
	authenticate(c, 2)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var out map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "price")
	assert.Contains(t, out, "time_minutes")
}

func TestRecipePatchPriceKeepsOtherFields(t *testing.T) {
	existing := model.Recipe{
		ID:          5,
		Title:       "Curry",
		PriceCents:  500,
		TimeMinutes: 30,
		OwnerID:     2,
	}
	var updated *model.Recipe
	recipes := &mockRecipeRepo{
		getFunc: func(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
			r := existing
			return &r, nil
		},
		updateFunc: func(ctx context.Context, recipe *model.Recipe) error {
			updated = recipe
			return nil
		},
	}
	h := NewRecipeHandler(recipes, &mockTagRepo{}, &mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodPatch, "/api/recipes/5", `{"price":"7.50"}`)
	authenticate(c, 2)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, updated)
	assert.Equal(t, int64(750), updated.PriceCents)
	assert.Equal(t, "Curry", updated.Title)
	assert.Equal(t, 30, updated.TimeMinutes)
}

func TestRecipePatchReplacesTagSet(t *testing.T) {
	existing := model.Recipe{
		ID:      5,
		Title:   "Curry",
		OwnerID: 2,
		Tags:    []model.Tag{{ID: 1, Name: "Dinner", OwnerID: 2}},
	}
	var replaced []model.Tag
	recipes := &mockRecipeRepo{
		getFunc: func(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
			r := existing
			return &r, nil
		},
		updateFunc: func(ctx context.Context, recipe *model.Recipe) error { return nil },
		replaceTagsFunc: func(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
			replaced = tags
			recipe.Tags = tags
			return nil
		},
	}
	tags := &mockTagRepo{
		findFunc: func(ctx context.Context, ownerID uint, ids []uint) ([]model.Tag, error) {
			return []model.Tag{{ID: 9, Name: "Lunch", OwnerID: ownerID}}, nil
		},
	}
	h := NewRecipeHandler(recipes, tags, &mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodPatch, "/api/recipes/5", `{"tag_ids":[9]}`)
	authenticate(c, 2)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, replaced, 1)
	assert.Equal(t, uint(9), replaced[0].ID)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	tagsOut, ok := out["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tagsOut, 1)
}

func TestRecipeListPassesFilters(t *testing.T) {
	var gotFilter repository.RecipeFilter
	recipes := &mockRecipeRepo{
		listFunc: func(ctx context.Context, ownerID uint, filter repository.RecipeFilter) ([]model.Recipe, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	h := NewRecipeHandler(recipes, &mockTagRepo{}, &mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/recipes?tags=1,2&ingredients=3", "")
	authenticate(c, 2)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{1, 2}, gotFilter.TagIDs)
	assert.Equal(t, []uint{3}, gotFilter.IngredientIDs)

	// An empty owner scope renders as an empty array
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestRecipeDeleteNotOwnedIs404(t *testing.T) {
	recipes := &mockRecipeRepo{
		deleteFunc: func(ctx context.Context, ownerID, id uint) error {
			return repository.ErrNotFound
		},
	}
	h := NewRecipeHandler(recipes, &mockTagRepo{}, &mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodDelete, "/api/recipes/8", "")
	authenticate(c, 2)
	c.SetParamNames("id")
	c.SetParamValues("8")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
