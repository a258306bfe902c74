package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/internal/prefs"
	"github.com/welovit/lead-buddy-app/pkg/logger"
	"github.com/welovit/lead-buddy-app/pkg/passhash"
	"github.com/welovit/lead-buddy-app/prometheus"
)

// Register creates a new user with optional profile fields and
// delivery preferences.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	// Parse request
	var req struct {
		Name            string        `json:"name"`
		Email           string        `json:"email"`
		Password        string        `json:"password"`
		Phone           string        `json:"phone"`
		CompanyName     string        `json:"company_name"`
		CompanyOverview string        `json:"company_overview"`
		Timezone        string        `json:"timezone"`
		Countries       []string      `json:"countries"`
		Categories      []interface{} `json:"categories"` // ids or names
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data",
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}

	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	result := db.Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashed, err := passhash.Hash(req.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		PasswordHash:        hashed,
		CompanyName:         req.CompanyName,
		CompanyOverview:     req.CompanyOverview,
		Timezone:            req.Timezone,
		CountryPreferences:  prefs.EncodeCountries(req.Countries),
		CategoryPreferences: prefs.EncodeCategoryIDs(resolveCategoryIDs(req.Categories)),
	}

	// Save to database - track DB insert operation
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := db.Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Login verifies credentials and issues an opaque session token.
// Unknown email and wrong password produce identical responses so the
// endpoint cannot be used to enumerate accounts.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := db.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Error("User lookup failed", zap.Error(result.Error))
			prometheus.RecordAuthError("db_error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		log.Warn("Login with unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if !passhash.Verify(req.Password, user.PasswordHash) {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := sessions.Create(user.ID)
	if err != nil {
		log.Error("Failed to create session", zap.Error(err))
		prometheus.RecordAuthError("session_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	prometheus.IncreaseActiveSessions()
	log.Info("User logged in", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// resolveCategoryIDs accepts category ids or category names and maps
// them to ids. Names that match no category are dropped, as are
// entries of any other type.
func resolveCategoryIDs(raw []interface{}) []uint {
	ids := []uint{}
	for _, entry := range raw {
		switch v := entry.(type) {
		case float64: // JSON numbers decode as float64
			if v > 0 {
				ids = append(ids, uint(v))
			}
		case string:
			var category model.Category
			if err := db.Where("name = ?", v).First(&category).Error; err == nil {
				ids = append(ids, category.ID)
			}
		}
	}
	return ids
}
