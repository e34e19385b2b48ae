package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/demo"
	"github.com/careerpilot/careerpilot/internal/models"
	"github.com/careerpilot/careerpilot/internal/services"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type JobHandler struct {
	svc services.JobService
	cfg *config.Config
}

func NewJobHandler(svc services.JobService, cfg *config.Config) *JobHandler {
	return &JobHandler{svc: svc, cfg: cfg}
}

// jobResponse is the camelCase shape the dashboard expects.
type jobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Score          int       `json:"score"`
	Reasoning      string    `json:"reasoning"`
	Status         string    `json:"status"`
	Tags           []string  `json:"tags"`
	Notes          string    `json:"notes"`
	URL            string    `json:"url"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	TailoredResume string    `json:"tailoredResume,omitempty"`
	CoverLetter    string    `json:"coverLetter,omitempty"`
}

func toJobResponse(j *models.Job) jobResponse {
	tags := []string(j.Tags)
	if tags == nil {
		tags = []string{}
	}
	return jobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Company:        j.Company,
		Score:          j.Score,
		Reasoning:      j.Reasoning,
		Status:         j.Status,
		Tags:           tags,
		Notes:          j.Notes,
		URL:            j.URL,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		TailoredResume: j.TailoredResume,
		CoverLetter:    j.CoverLetter,
	}
}

func (h *JobHandler) List(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, demo.Jobs())
		return
	}

	userID, ok := resolveOwner(c)
	if !ok {
		return
	}

	jobs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]jobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, out)
}

type IngestJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Company        string   `json:"company" binding:"required"`
	URL            string   `json:"url"`
	Score          float64  `json:"score"`
	Reasoning      string   `json:"reasoning"`
	Status         string   `json:"status"`
	Tags           []string `json:"tags"`
	Notes          string   `json:"notes"`
	TailoredResume string   `json:"tailoredResume"`
	CoverLetter    string   `json:"coverLetter"`
	UserID         string   `json:"user_id"`
}

type ingestJobResponse struct {
	jobResponse
	Updated bool `json:"updated"`
}

type skippedResponse struct {
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason"`
}

func (h *JobHandler) Ingest(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Demo mode - job not saved"})
		return
	}

	var req IngestJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Ingest", "invalid request body", err))
		return
	}

	var userID string
	if isService(c) {
		userID = req.UserID
		if userID == "" {
			// the middleware may have picked it up from the query string
			if v, exists := c.Get("user_id"); exists {
				userID, _ = v.(string)
			}
		}
		if userID == "" {
			writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Ingest", "user_id required for API key auth", nil))
			return
		}
	} else {
		var ok bool
		if userID, ok = requireUserID(c); !ok {
			return
		}
	}

	res, err := h.svc.Ingest(c.Request.Context(), userID, services.IngestInput{
		Title:          req.Title,
		Company:        req.Company,
		URL:            req.URL,
		Score:          req.Score,
		Reasoning:      req.Reasoning,
		Status:         req.Status,
		Tags:           req.Tags,
		Notes:          req.Notes,
		TailoredResume: req.TailoredResume,
		CoverLetter:    req.CoverLetter,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// Below-threshold jobs are a business-level skip, not a pipeline failure.
	if res.Skipped {
		c.JSON(http.StatusOK, skippedResponse{Skipped: true, Reason: res.Reason})
		return
	}

	c.JSON(http.StatusOK, ingestJobResponse{
		jobResponse: toJobResponse(res.Job),
		Updated:     res.Updated,
	})
}

func (h *JobHandler) Get(c *gin.Context) {
	id := c.Param("id")

	if h.cfg.DemoMode {
		if job, ok := demo.JobByID(id); ok {
			c.JSON(http.StatusOK, job)
			return
		}
		writeError(c, utils.E(utils.CodeNotFound, "JobHandler.Get", "job not found", nil))
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	job, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJobResponse(job))
}

type UpdateJobRequest struct {
	Status *string   `json:"status,omitempty"`
	Notes  *string   `json:"notes,omitempty"`
	Tags   *[]string `json:"tags,omitempty"`
}

func (h *JobHandler) Update(c *gin.Context) {
	h.update(c, c.Param("id"), true)
}

// UpdateByQuery is the legacy route shape: PATCH /jobs?id=... with only
// status and notes mutable.
func (h *JobHandler) UpdateByQuery(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "job id required", nil))
		return
	}
	h.update(c, id, false)
}

func (h *JobHandler) update(c *gin.Context, id string, allowTags bool) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Demo mode - update simulated"})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}
	if !allowTags {
		req.Tags = nil
	}

	job, err := h.svc.Update(c.Request.Context(), userID, id, services.JobUpdate{
		Status: req.Status,
		Notes:  req.Notes,
		Tags:   req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJobResponse(job))
}

func (h *JobHandler) Delete(c *gin.Context) {
	h.delete(c, c.Param("id"))
}

func (h *JobHandler) DeleteByQuery(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Delete", "job id required", nil))
		return
	}
	h.delete(c, id)
}

func (h *JobHandler) delete(c *gin.Context, id string) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Demo mode - delete simulated"})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *JobHandler) BulkDelete(c *gin.Context) {
	if h.cfg.DemoMode {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Demo mode - bulk deletion simulated"})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.BulkDelete", "ids array required", err))
		return
	}

	count, err := h.svc.BulkDelete(c.Request.Context(), userID, req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (h *JobHandler) Stats(c *gin.Context) {
	if h.cfg.DemoMode {
		jobs := demo.Jobs()
		c.JSON(http.StatusOK, services.DashboardStats{
			Total:          len(jobs),
			HighFit:        3,
			Applied:        1,
			Interviewing:   1,
			AvgScore:       8.3,
			TimeSavedHours: float64(len(jobs)) * 0.5,
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
