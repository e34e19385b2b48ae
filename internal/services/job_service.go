package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/cache"
	"github.com/careerpilot/careerpilot/internal/models"
	pgrepo "github.com/careerpilot/careerpilot/internal/repositories/postgres"
	"github.com/careerpilot/careerpilot/internal/utils"
)

// IngestInput is one candidate job pushed by the scoring pipeline.
type IngestInput struct {
	Title          string
	Company        string
	URL            string
	Score          float64
	Reasoning      string
	Status         string
	Tags           []string
	Notes          string
	TailoredResume string
	CoverLetter    string
}

type IngestResult struct {
	Job     *models.Job
	Updated bool
	// Skipped means the transport call succeeded but the job scored below
	// the effective minimum and nothing was written.
	Skipped bool
	Reason  string
}

// JobUpdate carries the user-mutable fields; nil means "leave unchanged".
type JobUpdate struct {
	Status *string
	Notes  *string
	Tags   *[]string
}

type DashboardStats struct {
	Total          int     `json:"total"`
	HighFit        int     `json:"highFit"`
	Applied        int     `json:"applied"`
	Interviewing   int     `json:"interviewing"`
	AvgScore       float64 `json:"avgScore"`
	TimeSavedHours float64 `json:"timeSaved"`
}

type JobService interface {
	List(ctx context.Context, userID string) ([]models.Job, error)
	Get(ctx context.Context, userID, id string) (*models.Job, error)
	Ingest(ctx context.Context, userID string, in IngestInput) (*IngestResult, error)
	Update(ctx context.Context, userID, id string, upd JobUpdate) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) error
	BulkDelete(ctx context.Context, userID string, ids []string) (int64, error)
	Stats(ctx context.Context, userID string) (*DashboardStats, error)
}

type jobService struct {
	jobs  pgrepo.JobRepository
	prefs pgrepo.PreferencesRepository
	cache cache.Cache // optional
	cfg   *config.Config
	log   *logrus.Logger
}

func NewJobService(jobs pgrepo.JobRepository, prefs pgrepo.PreferencesRepository, c cache.Cache, cfg *config.Config, log *logrus.Logger) JobService {
	return &jobService{jobs: jobs, prefs: prefs, cache: c, cfg: cfg, log: log}
}

func (s *jobService) List(ctx context.Context, userID string) ([]models.Job, error) {
	const op = "JobService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if s.cache != nil {
		var cached []models.Job
		if hit, err := s.cache.GetJSON(ctx, cache.JobsKey(userID), &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := s.jobs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	if rows == nil {
		rows = []models.Job{}
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.JobsKey(userID), rows, cache.JobListTTL); err != nil {
			s.log.WithError(err).Debug("job list cache write failed")
		}
	}
	return rows, nil
}

func (s *jobService) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if userID == "" || id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and id are required", nil)
	}

	job, err := s.jobs.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return job, nil
}

func (s *jobService) Ingest(ctx context.Context, userID string, in IngestInput) (*IngestResult, error) {
	const op = "JobService.Ingest"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if in.Title == "" || in.Company == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and company are required", nil)
	}

	score := RoundScore(in.Score)
	url := NormalizeURL(in.URL)
	reasoning := SanitizeReasoning(in.Reasoning)

	if min := s.effectiveMinScore(ctx, userID); score < min {
		return &IngestResult{
			Skipped: true,
			Reason:  fmt.Sprintf("score %d below threshold %d", score, min),
		}, nil
	}

	status := in.Status
	if status == "" {
		status = models.StatusFound
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	// Dedup by normalized URL first; an empty URL can never match, so those
	// rows fall through to the title+company lookup.
	var existing *models.Job
	if url != "" {
		job, err := s.jobs.FindByURL(ctx, userID, url)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "dedup lookup failed", err)
		}
		existing = job
	}
	if existing == nil {
		job, err := s.jobs.FindByTitleCompany(ctx, userID, in.Title, in.Company)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "dedup lookup failed", err)
		}
		existing = job
	}

	now := time.Now().UTC()

	if existing != nil {
		existing.Title = in.Title
		existing.Company = in.Company
		existing.URL = url
		existing.Score = score
		existing.Reasoning = reasoning
		existing.Status = status
		existing.Tags = tags
		existing.Notes = in.Notes
		existing.TailoredResume = in.TailoredResume
		existing.CoverLetter = in.CoverLetter
		existing.UpdatedAt = now

		if err := s.jobs.Save(ctx, existing); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
		}
		s.invalidate(ctx, userID)
		return &IngestResult{Job: existing, Updated: true}, nil
	}

	job := &models.Job{
		UserID:         userID,
		Title:          in.Title,
		Company:        in.Company,
		URL:            url,
		Score:          score,
		Reasoning:      reasoning,
		Status:         status,
		Tags:           tags,
		Notes:          in.Notes,
		TailoredResume: in.TailoredResume,
		CoverLetter:    in.CoverLetter,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// For URL-bearing jobs the insert rides the partial unique index, so two
	// concurrent first sightings collapse into one row instead of racing.
	var err error
	if url != "" {
		err = s.jobs.UpsertByURL(ctx, job)
	} else {
		err = s.jobs.Create(ctx, job)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	s.invalidate(ctx, userID)
	return &IngestResult{Job: job}, nil
}

func (s *jobService) Update(ctx context.Context, userID, id string, upd JobUpdate) (*models.Job, error) {
	const op = "JobService.Update"

	job, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		job.Status = *upd.Status
	}
	if upd.Notes != nil {
		job.Notes = *upd.Notes
	}
	if upd.Tags != nil {
		job.Tags = *upd.Tags
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	s.invalidate(ctx, userID)
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, userID, id string) error {
	const op = "JobService.Delete"

	if userID == "" || id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and id are required", nil)
	}

	rows, err := s.jobs.Delete(ctx, userID, id)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	if rows == 0 {
		return utils.E(utils.CodeNotFound, op, "job not found", nil)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *jobService) BulkDelete(ctx context.Context, userID string, ids []string) (int64, error) {
	const op = "JobService.BulkDelete"

	if userID == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if len(ids) == 0 {
		return 0, utils.E(utils.CodeInvalidArgument, op, "ids array required", nil)
	}

	// Demo fixtures carry ids like "demo-1" that would break the uuid column;
	// anything that isn't a UUID never came from our store.
	real := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			real = append(real, id)
		}
	}
	if len(real) == 0 {
		return 0, nil
	}

	count, err := s.jobs.DeleteByIDs(ctx, userID, real)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to delete jobs", err)
	}
	s.invalidate(ctx, userID)
	return count, nil
}

func (s *jobService) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	const op = "JobService.Stats"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	rows, err := s.jobs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	min := s.storedMinScore(ctx, userID)

	stats := &DashboardStats{}
	sum := 0
	for _, j := range rows {
		if j.Score < min || j.Status == models.StatusRejected {
			continue
		}
		stats.Total++
		sum += j.Score
		if j.Score >= 8 {
			stats.HighFit++
		}
		switch j.Status {
		case models.StatusApplied:
			stats.Applied++
		case models.StatusInterviewing:
			stats.Interviewing++
		}
	}
	if stats.Total > 0 {
		stats.AvgScore = math.Round(float64(sum)/float64(stats.Total)*10) / 10
	}
	// the dashboard credits half an hour of manual screening per surfaced job
	stats.TimeSavedHours = float64(stats.Total) * 0.5
	return stats, nil
}

// storedMinScore is the user's own display threshold, 7 when unset.
func (s *jobService) storedMinScore(ctx context.Context, userID string) int {
	prefs, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			s.log.WithError(err).Warn("failed to load preferences, using default min score")
		}
		return models.DefaultMinScore
	}
	return prefs.MinScore
}

// effectiveMinScore applies the process-wide override when configured, and
// flags any mismatch with the stored preference.
func (s *jobService) effectiveMinScore(ctx context.Context, userID string) int {
	stored := s.storedMinScore(ctx, userID)
	if s.cfg.MinScoreOverride == nil {
		return stored
	}
	if *s.cfg.MinScoreOverride != stored {
		s.log.WithFields(logrus.Fields{
			"user_id":  userID,
			"stored":   stored,
			"override": *s.cfg.MinScoreOverride,
		}).Warn("ingest min score override differs from stored preference")
	}
	return *s.cfg.MinScoreOverride
}

func (s *jobService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cache.JobsKey(userID)); err != nil {
		s.log.WithError(err).Debug("job list cache invalidation failed")
	}
}
