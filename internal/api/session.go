package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

type loginRequest struct {
	Email string `json:"email" binding:"required"`
}

type signupRequest struct {
	Email string      `json:"email" binding:"required"`
	Name  string      `json:"name" binding:"required"`
	Role  models.Role `json:"role"`
}

func (h *Handler) getSession(c *gin.Context) {
	u, ok := h.sessions.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": u})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.sessions.Login(c.Request.Context(), req.Email)
	h.respondSession(c, u, err)
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RolePublic
	}
	u, err := h.sessions.Signup(c.Request.Context(), req.Email, req.Name, req.Role)
	h.respondSession(c, u, err)
}

func (h *Handler) googleLogin(c *gin.Context) {
	u, err := h.sessions.GoogleLogin(c.Request.Context())
	h.respondSession(c, u, err)
}

func (h *Handler) respondSession(c *gin.Context, u models.User, err error) {
	if err != nil {
		slog.Warn("sign in failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": u})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}
