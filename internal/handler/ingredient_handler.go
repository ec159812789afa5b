package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
	"github.com/rotem123456/recipe-app-api/internal/serializer"
	"github.com/rotem123456/recipe-app-api/pkg/logger"
	"github.com/rotem123456/recipe-app-api/prometheus"
)

// IngredientHandler serves the ingredient resource endpoints. Every
// operation is scoped to the authenticated user.
type IngredientHandler struct {
	repo repository.IngredientRepository
}

// NewIngredientHandler creates an IngredientHandler
func NewIngredientHandler(repo repository.IngredientRepository) *IngredientHandler {
	return &IngredientHandler{repo: repo}
}

// List handles GET /api/ingredients, ordered by name descending
func (h *IngredientHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("ingredient", "list")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	ingredients, err := h.repo.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		log.Error("Failed to list ingredients", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve ingredients"})
	}

	return c.JSON(http.StatusOK, serializer.Ingredients(ingredients))
}

// Create handles POST /api/ingredients. The owner is always the caller,
// never client-supplied.
func (h *IngredientHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("ingredient", "create")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req serializer.IngredientCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if errs := req.Validate(); errs.Any() {
		prometheus.RecordValidationError("ingredient")
		return c.JSON(http.StatusBadRequest, errs)
	}

	ingredient := model.Ingredient{
		Name:    req.Name,
		OwnerID: userID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.repo.Create(c.Request().Context(), &ingredient); err != nil {
		log.Error("Failed to create ingredient", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create ingredient"})
	}

	log.Info("Ingredient created",
		zap.Uint("id", ingredient.ID),
		zap.String("name", ingredient.Name),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, serializer.NewIngredient(ingredient))
}

// Get handles GET /api/ingredients/:id
func (h *IngredientHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("ingredient", "get")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "ingredient")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	ingredient, err := h.repo.GetByOwner(c.Request().Context(), userID, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to get ingredient", zap.Uint("id", id), zap.Error(err))
		}
		return notFound(c, "ingredient")
	}

	return c.JSON(http.StatusOK, serializer.NewIngredient(*ingredient))
}

// Patch handles PATCH /api/ingredients/:id; only supplied fields change
func (h *IngredientHandler) Patch(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("ingredient", "update")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "ingredient")
	}

	ingredient, err := h.repo.GetByOwner(c.Request().Context(), userID, id)
	if err != nil {
		return notFound(c, "ingredient")
	}

	var patch serializer.IngredientPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if errs := patch.Apply(ingredient); errs.Any() {
		prometheus.RecordValidationError("ingredient")
		return c.JSON(http.StatusBadRequest, errs)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Update(c.Request().Context(), ingredient); err != nil {
		log.Error("Failed to update ingredient", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update ingredient"})
	}

	log.Info("Ingredient updated", zap.Uint("id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, serializer.NewIngredient(*ingredient))
}

// Delete handles DELETE /api/ingredients/:id
func (h *IngredientHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("ingredient", "delete")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "ingredient")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.repo.DeleteByOwner(c.Request().Context(), userID, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to delete ingredient", zap.Uint("id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete ingredient"})
		}
		return notFound(c, "ingredient")
	}

	log.Info("Ingredient deleted", zap.Uint("id", id), zap.Uint("user_id", userID))
	return c.NoContent(http.StatusNoContent)
}

// parseID reads the :id path parameter. A malformed id is reported the
// same way as a missing row, so callers cannot probe the id space.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func notFound(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": resource + " not found"})
}
