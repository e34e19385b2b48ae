package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/demo"
	"github.com/careerpilot/careerpilot/internal/services"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type SettingsHandler struct {
	svc services.SettingsService
	cfg *config.Config
}

func NewSettingsHandler(svc services.SettingsService, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{svc: svc, cfg: cfg}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, demo.Preferences())
		return
	}

	userID, ok := resolveOwner(c)
	if !ok {
		return
	}

	settings, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	Filters       *services.SettingsFilters       `json:"filters,omitempty"`
	Notifications *services.SettingsNotifications `json:"notifications,omitempty"`
	Profile       *services.SettingsProfile       `json:"profile,omitempty"`
}

func (h *SettingsHandler) Update(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Demo mode - preferences not saved"})
		return
	}

	userID, ok := resolveOwner(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SettingsHandler.Update", "invalid request body", err))
		return
	}

	err := h.svc.Update(c.Request.Context(), userID, services.SettingsUpdate{
		Filters:       req.Filters,
		Notifications: req.Notifications,
		Profile:       req.Profile,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
