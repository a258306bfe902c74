package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welovit/lead-buddy-app/prometheus"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"service": "lead-buddy-app",
	})
}

// MetricsHandler serves the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
