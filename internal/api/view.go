package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-coastal-alerts/internal/session"
)

type sectionRequest struct {
	Section string `json:"section" binding:"required"`
}

type filterRequest struct {
	Filter string `json:"filter" binding:"required"`
}

type locationRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.View().State())
}

func (h *Handler) switchSection(c *gin.Context) {
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sec, err := session.ParseSection(req.Section)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.sessions.View().SwitchSection(sec))
}

func (h *Handler) setAlertFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := h.sessions.View().SetAlertFilter(req.Filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// selectLocation opens the detail panel. Unknown locations leave the view as is.
func (h *Handler) selectLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view := h.sessions.View()
	if _, ok := h.engine.Location(req.ID); !ok {
		c.JSON(http.StatusOK, view.State())
		return
	}
	c.JSON(http.StatusOK, view.SelectLocation(req.ID))
}

func (h *Handler) clearLocation(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.View().ClearLocation())
}

func (h *Handler) toggleNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.View().ToggleNotifications())
}

func (h *Handler) toggleUserMenu(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.View().ToggleUserMenu())
}
