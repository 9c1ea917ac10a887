package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-coastal-alerts/internal/dashboard"
	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/repository"
	"github.com/mr1hm/go-coastal-alerts/internal/session"
)

type alertResponse struct {
	models.Alert
	TimeAgo string `json:"time_ago"`
}

type createAlertRequest struct {
	Location    string `json:"location" binding:"required"`
	Severity    string `json:"severity" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) withTimeAgo(alerts []models.Alert) []alertResponse {
	now := h.clock.Now()
	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertResponse{Alert: a, TimeAgo: models.TimeAgo(now, a.Timestamp)})
	}
	return out
}

// getAlerts lists alerts most recent first. Without a severity query the
// view's current filter applies.
func (h *Handler) getAlerts(c *gin.Context) {
	filter := c.Query("severity")
	if filter == "" {
		filter = h.sessions.View().State().AlertFilter
	}

	var severity models.ThreatLevel
	if !strings.EqualFold(filter, session.FilterAll) {
		level, err := models.ParseThreatLevel(filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		severity = level
	}

	c.JSON(http.StatusOK, h.withTimeAgo(h.engine.Alerts(severity)))
}

func (h *Handler) getArchivedAlerts(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20,
	}

	if s := c.Query("severity"); s != "" && !strings.EqualFold(s, session.FilterAll) {
		level, err := models.ParseThreatLevel(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Severity = &level
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}
	if o := c.Query("offset"); o != "" {
		if off, err := strconv.Atoi(o); err == nil && off >= 0 {
			filter.Offset = off
		}
	}

	alerts, err := h.engine.Archived(c.Request.Context(), filter)
	if err != nil {
		slog.Error("error listing archived alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch archived alerts",
		})
		return
	}
	c.JSON(http.StatusOK, h.withTimeAgo(alerts))
}

func (h *Handler) requireAdmin(c *gin.Context) {
	u, ok := h.sessions.Current()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	if !u.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}
	c.Next()
}

func (h *Handler) createAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	severity, err := models.ParseThreatLevel(req.Severity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.engine.CreateAlert(c.Request.Context(), dashboard.NewAlert{
		Location:    req.Location,
		Severity:    severity,
		Title:       req.Title,
		Description: req.Description,
	})
	if errors.Is(err, dashboard.ErrInvalidSeverity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		return
	}

	c.JSON(http.StatusCreated, alertResponse{Alert: a, TimeAgo: models.TimeAgo(h.clock.Now(), a.Timestamp)})
}

// acknowledgeAlert always succeeds; unknown ids change nothing.
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	id := c.Param("id")
	found := h.engine.Acknowledge(id)
	c.JSON(http.StatusOK, gin.H{"id": id, "found": found})
}
