package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
)

type mockIngredientRepo struct {
	listFunc   func(ctx context.Context, ownerID uint) ([]model.Ingredient, error)
	getFunc    func(ctx context.Context, ownerID, id uint) (*model.Ingredient, error)
	findFunc   func(ctx context.Context, ownerID uint, ids []uint) ([]model.Ingredient, error)
	createFunc func(ctx context.Context, ingredient *model.Ingredient) error
	updateFunc func(ctx context.Context, ingredient *model.Ingredient) error
	deleteFunc func(ctx context.Context, ownerID, id uint) error
}

func (m *mockIngredientRepo) ListByOwner(ctx context.Context, ownerID uint) ([]model.Ingredient, error) {
	return m.listFunc(ctx, ownerID)
}

func (m *mockIngredientRepo) GetByOwner(ctx context.Context, ownerID, id uint) (*model.Ingredient, error) {
	return m.getFunc(ctx, ownerID, id)
}

func (m *mockIngredientRepo) FindByOwnerAndIDs(ctx context.Context, ownerID uint, ids []uint) ([]model.Ingredient, error) {
	return m.findFunc(ctx, ownerID, ids)
}

func (m *mockIngredientRepo) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return m.createFunc(ctx, ingredient)
}

func (m *mockIngredientRepo) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return m.updateFunc(ctx, ingredient)
}

func (m *mockIngredientRepo) DeleteByOwner(ctx context.Context, ownerID, id uint) error {
	return m.deleteFunc(ctx, ownerID, id)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

func authenticate(c echo.Context, userID uint) {
	c.Set("user_id", userID)
	c.Set("email", "user@example.com")
}

func TestIngredientListReturnsOwnerRowsNameDescending(t *testing.T) {
	var gotOwner uint
	repo := &mockIngredientRepo{
		listFunc: func(ctx context.Context, ownerID uint) ([]model.Ingredient, error) {
			gotOwner = ownerID
			return []model.Ingredient{
				{ID: 2, Name: "Vanila", OwnerID: ownerID},
				{ID: 1, Name: "Kale", OwnerID: ownerID},
			}, nil
		},
	}
	h := NewIngredientHandler(repo)

	c, rec := newTestContext(t, http.MethodGet, "/api/ingredients", "")
	authenticate(c, 1)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(1), gotOwner)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Vanila", body[0]["name"])
	assert.Equal(t, "Kale", body[1]["name"])
}

func TestIngredientListUnauthenticated(t *testing.T) {
	h := NewIngredientHandler(&mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/ingredients", "")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "name")
}

func TestIngredientCreateBindsOwnerFromToken(t *testing.T) {
	var created *model.Ingredient
	repo := &mockIngredientRepo{
		createFunc: func(ctx context.Context, ingredient *model.Ingredient) error {
			ingredient.ID = 10
			created = ingredient
			return nil
		},
	}
	h := NewIngredientHandler(repo)

	c, rec := newTestContext(t, http.MethodPost, "/api/ingredients", `{"name":"Kale"}`)
	authenticate(c, 7)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, created)
	assert.Equal(t, uint(7), created.OwnerID)
	assert.Equal(t, "Kale", created.Name)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body["id"])
	assert.Equal(t, "Kale", body["name"])
}

func TestIngredientCreateValidationFailure(t *testing.T) {
	h := NewIngredientHandler(&mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodPost, "/api/ingredients", `{"name":""}`)
	authenticate(c, 1)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "name")
}

func TestIngredientGetNotOwnedIs404(t *testing.T) {
	repo := &mockIngredientRepo{
		getFunc: func(ctx context.Context, ownerID, id uint) (*model.Ingredient, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := NewIngredientHandler(repo)

	c, rec := newTestContext(t, http.MethodGet, "/api/ingredients/5", "")
	authenticate(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIngredientGetMalformedIDIs404(t *testing.T) {
	h := NewIngredientHandler(&mockIngredientRepo{})

	c, rec := newTestContext(t, http.MethodGet, "/api/ingredients/abc", "")
	authenticate(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIngredientPatchUpdatesOnlySuppliedFields(t *testing.T) {
	existing := model.Ingredient{ID: 3, Name: "Sugar", OwnerID: 1}
	var updated *model.Ingredient
	repo := &mockIngredientRepo{
		getFunc: func(ctx context.Context, ownerID, id uint) (*model.Ingredient, error) {
			ing := existing
			return &ing, nil
		},
		updateFunc: func(ctx context.Context, ingredient *model.Ingredient) error {
			updated = ingredient
			return nil
		},
	}
	h := NewIngredientHandler(repo)

	c, rec := newTestContext(t, http.MethodPatch, "/api/ingredients/3", `{"name":"Sugar_updated"}`)
	authenticate(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, updated)
	assert.Equal(t, "Sugar_updated", updated.Name)
	assert.Equal(t, uint(3), updated.ID)
	assert.Equal(t, uint(1), updated.OwnerID)
}

func TestIngredientDelete(t *testing.T) {
	deleted := map[uint]bool{}
	repo := &mockIngredientRepo{
		deleteFunc: func(ctx context.Context, ownerID, id uint) error {
			if deleted[id] {
				return repository.ErrNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	h := NewIngredientHandler(repo)

	c, rec := newTestContext(t, http.MethodDelete, "/api/ingredients/4", "")
	authenticate(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// A second delete of the same id is a 404, not another 204
	c, rec = newTestContext(t, http.MethodDelete, "/api/ingredients/4", "")
	authenticate(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
