package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rotem123456/recipe-app-api/internal/directory"
	"github.com/rotem123456/recipe-app-api/internal/repository"
	"github.com/rotem123456/recipe-app-api/internal/serializer"
	"github.com/rotem123456/recipe-app-api/pkg/jwtutil"
	"github.com/rotem123456/recipe-app-api/pkg/logger"
	"github.com/rotem123456/recipe-app-api/prometheus"
)

// AuthHandler serves registration, login and profile endpoints
type AuthHandler struct {
	directory *directory.Service
	users     repository.UserRepository
	jwt       *jwtutil.JWTUtil
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(dir *directory.Service, users repository.UserRepository, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{directory: dir, users: users, jwt: jwt}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Password == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, serializer.FieldErrors{
			"password": {"this field may not be blank"},
		})
	}

	// Reject duplicates before hitting the unique index
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.users.FindByEmail(c.Request().Context(), directory.NormalizeEmail(req.Email)); err == nil {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.directory.CreateUser(c.Request().Context(), req.Email, req.Password, directory.Options{Name: req.Name})
	if err != nil {
		if errors.Is(err, directory.ErrEmailRequired) {
			prometheus.RecordAuthError("incomplete_registration")
			return c.JSON(http.StatusBadRequest, serializer.FieldErrors{
				"email": {"this field may not be blank"},
			})
		}
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, serializer.NewUser(*user))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.FindByEmail(c.Request().Context(), directory.NormalizeEmail(req.Email))
	if err != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !directory.CheckPassword(user, req.Password) {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !directory.IsAuthenticated(user) {
		log.Warn("Inactive account login attempt", zap.String("email", req.Email))
		prometheus.RecordAuthError("inactive_account")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}

	token, err := h.jwt.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  serializer.NewUser(*user),
	})
}

// Me handles GET /api/users/me
func (h *AuthHandler) Me(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := currentUserID(c)
	if !ok {
		return unauthorized(c)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		log.Error("Failed to load profile", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, serializer.NewUser(*user))
}
