package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/services"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type NotifyHandler struct {
	svc services.NotifyService
	cfg *config.Config
}

func NewNotifyHandler(svc services.NotifyService, cfg *config.Config) *NotifyHandler {
	return &NotifyHandler{svc: svc, cfg: cfg}
}

type NotifyRequest struct {
	UserID    string  `json:"user_id"`
	Title     string  `json:"title"`
	Company   string  `json:"company"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Evaluate is called by the pipeline when a high-fit job is found.
func (h *NotifyHandler) Evaluate(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Demo mode - notification simulated"})
		return
	}

	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "NotifyHandler.Evaluate", "invalid request body", err))
		return
	}

	res, err := h.svc.Evaluate(c.Request.Context(), services.NotifyInput{
		UserID:    req.UserID,
		Title:     req.Title,
		Company:   req.Company,
		Score:     req.Score,
		Reasoning: req.Reasoning,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *NotifyHandler) Settings(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, services.NotifySettings{
			Email:            "dem***",
			InstantAlerts:    true,
			DailyDigest:      true,
			MinScoreForAlert: 8,
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	settings, err := h.svc.Settings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
