package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/welovit/lead-buddy-app/internal/ledger"
	"github.com/welovit/lead-buddy-app/internal/middleware"
	"github.com/welovit/lead-buddy-app/pkg/logger"
	"github.com/welovit/lead-buddy-app/prometheus"
)

// GetDailyLeads returns today's lead batch for the authenticated user,
// allocating it on the first call of the day.
func GetDailyLeads(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get(middleware.UserIDKey).(uint)

	start := time.Now()
	views, fresh, err := engine.DeliverDaily(userID)
	prometheus.AllocationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("Daily lead allocation failed", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to deliver leads"})
	}

	if fresh {
		prometheus.LeadsDeliveredCounter.Add(float64(len(views)))
		log.Info("Daily batch allocated",
			zap.Uint("user_id", userID),
			zap.Int("count", len(views)))
	}

	return c.JSON(http.StatusOK, echo.Map{"leads": views})
}

// GetUserLeads lists every lead delivered to the user, newest first,
// optionally filtered by status.
func GetUserLeads(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get(middleware.UserIDKey).(uint)
	status := c.QueryParam("status")

	defer prometheus.TrackDBOperation("query")(time.Now())
	views, err := ledger.Delivered(db, userID, status)
	if err != nil {
		log.Error("Failed to list delivered leads", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve leads"})
	}

	return c.JSON(http.StatusOK, echo.Map{"leads": views})
}

// UpdateLeadStatus sets the follow-up status on a delivered lead.
func UpdateLeadStatus(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		LeadID         uint   `json:"lead_id"`
		Status         string `json:"status"`
		NextActionDate string `json:"next_action_date"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.LeadID == 0 || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lead_id and status are required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	err := ledger.UpdateStatus(db, userID, req.LeadID, req.Status, req.NextActionDate)
	if errors.Is(err, ledger.ErrNotOwned) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found for this user"})
	}
	if err != nil {
		log.Error("Failed to update lead status",
			zap.Uint("user_id", userID),
			zap.Uint("lead_id", req.LeadID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}

	prometheus.RecordLedgerOperation("status_update")
	log.Info("Lead status updated",
		zap.Uint("user_id", userID),
		zap.Uint("lead_id", req.LeadID),
		zap.String("status", req.Status))
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// AddLeadNote appends a timestamped note to a delivered lead's log.
func AddLeadNote(c echo.Context) error {
	log := logger.FromContext(c)
	userID := c.Get(middleware.UserIDKey).(uint)

	var req struct {
		LeadID  uint   `json:"lead_id"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.LeadID == 0 || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lead_id and content are required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	err := ledger.AppendNote(db, userID, req.LeadID, req.Content, time.Now())
	if errors.Is(err, ledger.ErrNotOwned) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lead not found for this user"})
	}
	if err != nil {
		log.Error("Failed to append note",
			zap.Uint("user_id", userID),
			zap.Uint("lead_id", req.LeadID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add note"})
	}

	prometheus.RecordLedgerOperation("note_append")
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
