package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/pkg/logger"
)

// ListCategories returns the category catalog ordered by name.
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	var categories []model.Category
	result := db.Order("name").Find(&categories)
	if result.Error != nil {
		log.Error("Failed to retrieve categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to retrieve categories",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}
