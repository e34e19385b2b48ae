package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/services"
)

// AutomationHandler serves the scoring pipeline's read side: the profile and
// threshold it needs before ranking discovered postings.
type AutomationHandler struct {
	svc services.SettingsService
	cfg *config.Config
}

func NewAutomationHandler(svc services.SettingsService, cfg *config.Config) *AutomationHandler {
	return &AutomationHandler{svc: svc, cfg: cfg}
}

func (h *AutomationHandler) Profile(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, services.AutomationProfile{
			TargetRole: "AI Engineer",
			Skills:     []string{"n8n", "TypeScript", "Automation"},
			MinScore:   7,
			UserName:   "Demo User",
		})
		return
	}

	var userID string
	if isService(c) {
		// empty is fine: the service falls back to the latest profile
		if v, exists := c.Get("user_id"); exists {
			userID, _ = v.(string)
		}
	} else {
		var ok bool
		if userID, ok = requireUserID(c); !ok {
			return
		}
	}

	profile, err := h.svc.AutomationProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
