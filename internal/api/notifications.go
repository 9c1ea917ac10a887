package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type permissionRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}

func (h *Handler) setPermission(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatcher.SetPermission(*req.Granted)
	c.JSON(http.StatusOK, gin.H{"granted": h.dispatcher.Permitted()})
}

// streamNotifications relays toasts as server-sent events until the client
// goes away or the broadcaster closes.
func (h *Handler) streamNotifications(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)
	slog.Debug("notification stream opened", "subscriber", id)

	// headers go out before the first event so clients see the stream open
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		}
	})
	slog.Debug("notification stream closed", "subscriber", id)
}
