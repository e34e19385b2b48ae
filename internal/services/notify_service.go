package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/careerpilot/careerpilot/internal/models"
	pgrepo "github.com/careerpilot/careerpilot/internal/repositories/postgres"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type NotifyInput struct {
	UserID    string
	Title     string
	Company   string
	Score     float64
	Reasoning string
}

// NotifyResult mirrors the pipeline contract: a job that should not alert is
// still a successful call, with the reason spelled out.
type NotifyResult struct {
	Success bool       `json:"success"`
	Reason  string     `json:"reason,omitempty"`
	Message string     `json:"message,omitempty"`
	Job     *NotifyJob `json:"job,omitempty"`
}

type NotifyJob struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Score   int    `json:"score"`
}

type NotifySettings struct {
	Email            string `json:"email"`
	InstantAlerts    bool   `json:"instantAlerts"`
	DailyDigest      bool   `json:"dailyDigest"`
	MinScoreForAlert int    `json:"minScoreForAlert"`
}

type NotifyService interface {
	Evaluate(ctx context.Context, in NotifyInput) (*NotifyResult, error)
	Settings(ctx context.Context, userID string) (*NotifySettings, error)
}

type notifyService struct {
	profiles pgrepo.ProfileRepository
	prefs    pgrepo.PreferencesRepository
	log      *logrus.Logger
}

func NewNotifyService(profiles pgrepo.ProfileRepository, prefs pgrepo.PreferencesRepository, log *logrus.Logger) NotifyService {
	return &notifyService{profiles: profiles, prefs: prefs, log: log}
}

func (s *notifyService) Evaluate(ctx context.Context, in NotifyInput) (*NotifyResult, error) {
	const op = "NotifyService.Evaluate"

	if in.UserID == "" {
		return &NotifyResult{Success: false, Reason: "no user_id provided"}, nil
	}

	prof, err := s.profiles.GetByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	if prof == nil || prof.Email == "" {
		return &NotifyResult{Success: false, Reason: "no email configured"}, nil
	}

	minAlert := models.DefaultMinScoreForAlert
	var instantAlerts, emailEnabled bool
	prefs, err := s.prefs.GetByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get preferences", err)
	}
	if prefs != nil {
		minAlert = prefs.MinScoreForAlert
		instantAlerts = prefs.InstantAlerts
		emailEnabled = prefs.EmailNotifications
	}

	score := RoundScore(in.Score)
	if score < minAlert {
		return &NotifyResult{
			Success: false,
			Reason:  fmt.Sprintf("score %d below threshold %d", score, minAlert),
		}, nil
	}
	if !instantAlerts && !emailEnabled {
		return &NotifyResult{Success: false, Reason: "email notifications disabled"}, nil
	}

	// Delivery is log-only for now; the email provider integration hangs off
	// this decision point.
	s.log.WithFields(logrus.Fields{
		"user_id": in.UserID,
		"title":   in.Title,
		"company": in.Company,
		"score":   score,
		"to":      prof.Email,
	}).Info("high-fit job alert")

	return &NotifyResult{
		Success: true,
		Message: fmt.Sprintf("notification prepared for %s", prof.Email),
		Job:     &NotifyJob{Title: in.Title, Company: in.Company, Score: score},
	}, nil
}

func (s *notifyService) Settings(ctx context.Context, userID string) (*NotifySettings, error) {
	const op = "NotifyService.Settings"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	out := &NotifySettings{MinScoreForAlert: models.DefaultMinScoreForAlert}

	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	if prof != nil {
		out.Email = maskEmail(prof.Email)
	}

	prefs, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get preferences", err)
	}
	if prefs != nil {
		out.InstantAlerts = prefs.InstantAlerts
		out.DailyDigest = prefs.DailyDigest
		out.MinScoreForAlert = prefs.MinScoreForAlert
	}
	return out, nil
}

func maskEmail(email string) string {
	if email == "" {
		return ""
	}
	if len(email) <= 3 {
		return email + "***"
	}
	return email[:3] + "***"
}
