package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rotem123456/recipe-app-api/internal/model"
	"github.com/rotem123456/recipe-app-api/internal/repository"
	"github.com/rotem123456/recipe-app-api/internal/serializer"
	"github.com/rotem123456/recipe-app-api/pkg/logger"
	"github.com/rotem123456/recipe-app-api/prometheus"
)

// TagHandler serves the tag resource endpoints, scoped to the
// authenticated user.
type TagHandler struct {
	repo repository.TagRepository
}

// NewTagHandler creates a TagHandler
func NewTagHandler(repo repository.TagRepository) *TagHandler {
	return &TagHandler{repo: repo}
}

// List handles GET /api/tags, ordered by name descending
func (h *TagHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tag", "list")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	tags, err := h.repo.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		log.Error("Failed to list tags", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve tags"})
	}

	return c.JSON(http.StatusOK, serializer.Tags(tags))
}

// Create handles POST /api/tags
func (h *TagHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tag", "create")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req serializer.TagCreate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if errs := req.Validate(); errs.Any() {
		prometheus.RecordValidationError("tag")
		return c.JSON(http.StatusBadRequest, errs)
	}

	tag := model.Tag{
		Name:    req.Name,
		OwnerID: userID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.repo.Create(c.Request().Context(), &tag); err != nil {
		log.Error("Failed to create tag", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create tag"})
	}

	log.Info("Tag created",
		zap.Uint("id", tag.ID),
		zap.String("name", tag.Name),
		zap.Uint("user_id", userID))
	return c.JSON(http.StatusCreated, serializer.NewTag(tag))
}

// Get handles GET /api/tags/:id
func (h *TagHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tag", "get")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "tag")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	tag, err := h.repo.GetByOwner(c.Request().Context(), userID, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to get tag", zap.Uint("id", id), zap.Error(err))
		}
		return notFound(c, "tag")
	}

	return c.JSON(http.StatusOK, serializer.NewTag(*tag))
}

// Patch handles PATCH /api/tags/:id; only supplied fields change
func (h *TagHandler) Patch(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tag", "update")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "tag")
	}

	tag, err := h.repo.GetByOwner(c.Request().Context(), userID, id)
	if err != nil {
		return notFound(c, "tag")
	}

	var patch serializer.TagPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if errs := patch.Apply(tag); errs.Any() {
		prometheus.RecordValidationError("tag")
		return c.JSON(http.StatusBadRequest, errs)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Update(c.Request().Context(), tag); err != nil {
		log.Error("Failed to update tag", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update tag"})
	}

	log.Info("Tag updated", zap.Uint("id", id), zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, serializer.NewTag(*tag))
}

// Delete handles DELETE /api/tags/:id
func (h *TagHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tag", "delete")

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c)
	if err != nil {
		return notFound(c, "tag")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.repo.DeleteByOwner(c.Request().Context(), userID, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to delete tag", zap.Uint("id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete tag"})
		}
		return notFound(c, "tag")
	}

	log.Info("Tag deleted", zap.Uint("id", id), zap.Uint("user_id", userID))
	return c.NoContent(http.StatusNoContent)
}
