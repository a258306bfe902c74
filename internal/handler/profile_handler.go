package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/welovit/lead-buddy-app/internal/middleware"
	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/internal/prefs"
	"github.com/welovit/lead-buddy-app/pkg/logger"
	"github.com/welovit/lead-buddy-app/prometheus"
)

// GetProfile returns the authenticated user's profile and decoded
// preferences, with category ids resolved to names.
func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get(middleware.UserIDKey).(uint)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		log.Error("Failed to load user", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	categoryIDs := prefs.DecodeCategoryIDs(user.CategoryPreferences)
	categories := []model.Category{}
	if len(categoryIDs) > 0 {
		if err := db.Select("id", "name").Where("id IN ?", categoryIDs).
			Order("id").Find(&categories).Error; err != nil {
			log.Error("Failed to load preference categories", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load profile"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"name":             user.Name,
		"email":            user.Email,
		"phone":            user.Phone,
		"company_name":     user.CompanyName,
		"company_overview": user.CompanyOverview,
		"timezone":         user.Timezone,
		"countries":        prefs.DecodeCountries(user.CountryPreferences),
		"categories":       categories,
	})
}

// UpdateProfile applies a partial profile update: absent fields are
// left unchanged; an explicitly empty preference list clears the
// filter.
func UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		Phone           *string        `json:"phone"`
		CompanyName     *string        `json:"company_name"`
		CompanyOverview *string        `json:"company_overview"`
		Timezone        *string        `json:"timezone"`
		Countries       *[]string      `json:"countries"`
		Categories      *[]interface{} `json:"categories"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.CompanyOverview != nil {
		updates["company_overview"] = *req.CompanyOverview
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Countries != nil {
		updates["country_preferences"] = prefs.EncodeCountries(*req.Countries)
	}
	if req.Categories != nil {
		updates["category_preferences"] = prefs.EncodeCategoryIDs(resolveCategoryIDs(*req.Categories))
	}

	if len(updates) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		log.Error("Failed to update profile", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	log.Info("Profile updated", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
