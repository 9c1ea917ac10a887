package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-coastal-alerts/internal/dashboard"
	"github.com/mr1hm/go-coastal-alerts/internal/notify"
	"github.com/mr1hm/go-coastal-alerts/internal/session"
)

type Handler struct {
	engine      *dashboard.Engine
	sessions    *session.Manager
	dispatcher  *notify.Dispatcher
	broadcaster *notify.Broadcaster
	clock       clockwork.Clock
}

func NewHandler(engine *dashboard.Engine, sessions *session.Manager, dispatcher *notify.Dispatcher, broadcaster *notify.Broadcaster, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{
		engine:      engine,
		sessions:    sessions,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		clock:       clock,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/status", h.getStatus)
	api.GET("/locations", h.getLocations)
	api.GET("/locations/:id", h.getLocation)
	api.GET("/series", h.getSeries)

	api.GET("/alerts", h.getAlerts)
	api.GET("/alerts/archive", h.getArchivedAlerts)
	api.POST("/alerts", h.requireAdmin, h.createAlert)
	api.POST("/alerts/:id/ack", h.acknowledgeAlert)

	api.GET("/session", h.getSession)
	api.POST("/session/login", h.login)
	api.POST("/session/signup", h.signup)
	api.POST("/session/google", h.googleLogin)
	api.DELETE("/session", h.logout)

	api.GET("/view", h.getView)
	api.PUT("/view/section", h.switchSection)
	api.PUT("/view/filter", h.setAlertFilter)
	api.PUT("/view/location", h.selectLocation)
	api.DELETE("/view/location", h.clearLocation)
	api.POST("/view/notifications/toggle", h.toggleNotifications)
	api.POST("/view/user-menu/toggle", h.toggleUserMenu)

	api.POST("/notifications/permission", h.setPermission)
	api.GET("/notifications/stream", h.streamNotifications)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   h.engine.Status(),
		"overview": h.engine.Overview(),
	})
}

func (h *Handler) getLocations(c *gin.Context) {
	fc := toGeoJSON(h.engine.Locations())
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getLocation(c *gin.Context) {
	loc, ok := h.engine.Location(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *Handler) getSeries(c *gin.Context) {
	s := h.engine.Series()
	c.JSON(http.StatusOK, gin.H{
		"tide":      s.Tide,
		"wind":      s.Wind,
		"pollution": s.Pollution,
		"storm":     s.Storm,
		"weather":   h.engine.Weather(),
	})
}
