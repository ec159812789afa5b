package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
	"github.com/rotem123456/recipe-app-api/internal/serializer"
	"github.com/rotem123456/recipe-app-api/pkg/logger"
	"github.com/rotem123456/recipe-app-api/prometheus"
)

// RecipeHandler serves the recipe resource endpoints. Tag and ingredient
// references are resolved through the owner-scoped repositories, so a
// recipe can only ever point at the caller's own rows.
type RecipeHandler struct {
	recipes     repository.RecipeRepository
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
}

// NewRecipeHandler creates a RecipeHandler
func NewRecipeHandler(recipes repository.RecipeRepository, tags repository.TagRepository, ingredients repository.IngredientRepository) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, tags: tags, ingredients: ingredients}
}

// List handles GET /api/recipes with optional tags/ingredients filters
// (comma-separated id lists), newest first
func (h *RecipeHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("recipe", "list")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	filter := repository.RecipeFilter{
		TagIDs:        parseIDList(c.QueryParam("tags")),
		IngredientIDs: parseIDList(c.QueryParam("ingredients")),
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	recipes, err := h.recipes.ListByOwner(c.Request().Context(), userID, filter)
	if err != nil {
		log.Error("Failed to list recipes", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve recipes"})
	}

	return c.JSON(http.StatusOK, serializer.Recipes(recipes))
}

// Create handles POST /api/recipes
func (h *RecipeHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("recipe", "create")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req serializer.RecipeCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	priceCents, errs := req.Validate()

	tags, err := h.resolveTags(c, userID, req.TagIDs, errs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create recipe"})
	}
	ingredients, err := h.resolveIngredients(c, userID, req.IngredientIDs, errs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create recipe"})
	}

	if errs.Any() {
		prometheus.RecordValidationError("recipe")
		return c.JSON(http.StatusBadRequest, errs)
	}

	recipe := model.Recipe{
		Title:       req.Title,
		PriceCents:  priceCents,
		TimeMinutes: req.TimeMinutes,
		Description: req.Description,
		Link:        req.Link,
		OwnerID:     userID,
		Tags:        tags,
		Ingredients: ingredients,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.recipes.Create(c.Request().Context(), &recipe); err != nil {
		log.Error("Failed to create recipe", zap.String("title", req.Title), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create recipe"})
	}

	log.Info("Recipe created",
		zap.Uint("id", recipe.ID),
		zap.String("title", recipe.Title),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, serializer.NewRecipe(recipe))
}

// Get handles GET /api/recipes/:id
func (h *RecipeHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("recipe", "get")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "recipe")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	recipe, err := h.recipes.GetByOwner(c.Request().Context(), userID, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to get recipe", zap.Uint("id", id), zap.Error(err))
		}
		return notFound(c, "recipe")
	}

	return c.JSON(http.StatusOK, serializer.NewRecipe(*recipe))
}

// Patch handles PATCH /api/recipes/:id. Scalar fields change only when
// supplied; a supplied tag_ids/ingredient_ids list replaces the relation
// set, an absent one leaves it alone.
func (h *RecipeHandler) Patch(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("recipe", "update")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "recipe")
	}

	recipe, err := h.recipes.GetByOwner(c.Request().Context(), userID, id)
	if err != nil {
		return notFound(c, "recipe")
	}

	var patch serializer.RecipePatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	errs := patch.Apply(recipe)

	var tags []model.Tag
	if patch.TagIDs != nil {
		tags, err = h.resolveTags(c, userID, *patch.TagIDs, errs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update recipe"})
		}
	}
	var ingredients []model.Ingredient
	if patch.IngredientIDs != nil {
		ingredients, err = h.resolveIngredients(c, userID, *patch.IngredientIDs, errs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update recipe"})
		}
	}

	if errs.Any() {
		prometheus.RecordValidationError("recipe")
		return c.JSON(http.StatusBadRequest, errs)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.recipes.Update(c.Request().Context(), recipe); err != nil {
		log.Error("Failed to update recipe", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update recipe"})
	}

	if patch.TagIDs != nil {
		if err := h.recipes.ReplaceTags(c.Request().Context(), recipe, tags); err != nil {
			log.Error("Failed to replace recipe tags", zap.Uint("id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update recipe"})
		}
	}
	if patch.IngredientIDs != nil {
		if err := h.recipes.ReplaceIngredients(c.Request().Context(), recipe, ingredients); err != nil {
			log.Error("Failed to replace recipe ingredients", zap.Uint("id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update recipe"})
		}
	}

	log.Info("Recipe updated", zap.Uint("id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, serializer.NewRecipe(*recipe))
}

// Delete handles DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("recipe", "delete")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "recipe")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.recipes.DeleteByOwner(c.Request().Context(), userID, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to delete recipe", zap.Uint("id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete recipe"})
		}
		return notFound(c, "recipe")
	}

	log.Info("Recipe deleted", zap.Uint("id", id), zap.Uint("user_id", userID))
	return c.NoContent(http.StatusNoContent)
}

// resolveTags looks the ids up through the owner-scoped repository. Ids
// that do not resolve, including another user's tags, become a field
// error.
func (h *RecipeHandler) resolveTags(c echo.Context, userID uint, ids []uint, errs serializer.FieldErrors) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := h.tags.FindByOwnerAndIDs(c.Request().Context(), userID, ids)
	if err != nil {
		logger.FromEcho(c).Error("Failed to resolve tags", zap.Error(err))
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		errs.Add("tag_ids", "one or more tag ids are invalid")
	}
	return tags, nil
}

func (h *RecipeHandler) resolveIngredients(c echo.Context, userID uint, ids []uint, errs serializer.FieldErrors) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ingredients, err := h.ingredients.FindByOwnerAndIDs(c.Request().Context(), userID, ids)
	if err != nil {
		logger.FromEcho(c).Error("Failed to resolve ingredients", zap.Error(err))
		return nil, err
	}
	if len(ingredients) != len(uniqueIDs(ids)) {
		errs.Add("ingredient_ids", "one or more ingredient ids are invalid")
	}
	return ingredients, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// parseIDList parses a comma-separated id list query parameter,
// ignoring blanks and non-numeric entries
func parseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
