package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/careerpilot/careerpilot/internal/models"
	pgrepo "github.com/careerpilot/careerpilot/internal/repositories/postgres"
	"github.com/careerpilot/careerpilot/internal/utils"
)

// Settings is the combined profile + preferences document the dashboard
// settings page works with.
type Settings struct {
	Email         string                `json:"email"`
	Filters       SettingsFilters       `json:"filters"`
	Notifications SettingsNotifications `json:"notifications"`
	Profile       SettingsProfile       `json:"profile"`
}

type SettingsFilters struct {
	MinScore  int      `json:"minScore"`
	Locations []string `json:"locations"`
	SalaryMin *int     `json:"salaryMin"`
	SalaryMax *int     `json:"salaryMax"`
	JobTypes  []string `json:"jobTypes"`
}

type SettingsNotifications struct {
	EmailEnabled     bool `json:"emailEnabled"`
	DailyDigest      bool `json:"dailyDigest"`
	InstantAlerts    bool `json:"instantAlerts"`
	MinScoreForAlert int  `json:"minScoreForAlert"`
}

type SettingsProfile struct {
	Name            string `json:"name"`
	TargetRole      string `json:"targetRole"`
	YearsExperience int    `json:"yearsExperience"`
}

// SettingsUpdate applies whole sections at a time; nil sections are left
// untouched.
type SettingsUpdate struct {
	Filters       *SettingsFilters
	Notifications *SettingsNotifications
	Profile       *SettingsProfile
}

// AutomationProfile is what the scoring pipeline pulls before ranking
// discovered postings.
type AutomationProfile struct {
	TargetRole  string   `json:"targetRole"`
	Skills      []string `json:"skills"`
	MinScore    int      `json:"minScore"`
	UserName    string   `json:"userName"`
	WorkHistory string   `json:"workHistory"`
}

type SettingsService interface {
	Get(ctx context.Context, userID string) (*Settings, error)
	Update(ctx context.Context, userID string, in SettingsUpdate) error
	// AutomationProfile resolves the scoring-context profile. An empty userID
	// falls back to the most recently updated profile.
	AutomationProfile(ctx context.Context, userID string) (*AutomationProfile, error)
}

type settingsService struct {
	profiles pgrepo.ProfileRepository
	prefs    pgrepo.PreferencesRepository
}

func NewSettingsService(profiles pgrepo.ProfileRepository, prefs pgrepo.PreferencesRepository) SettingsService {
	return &settingsService{profiles: profiles, prefs: prefs}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*Settings, error) {
	const op = "SettingsService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	prof, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	prefs, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get preferences", err)
	}

	return &Settings{
		Email: prof.Email,
		Filters: SettingsFilters{
			MinScore:  prefs.MinScore,
			Locations: orEmpty(prefs.Locations),
			SalaryMin: prefs.SalaryMin,
			SalaryMax: prefs.SalaryMax,
			JobTypes:  orEmpty(prefs.JobTypes),
		},
		Notifications: SettingsNotifications{
			EmailEnabled:     prefs.EmailNotifications,
			DailyDigest:      prefs.DailyDigest,
			InstantAlerts:    prefs.InstantAlerts,
			MinScoreForAlert: prefs.MinScoreForAlert,
		},
		Profile: SettingsProfile{
			Name:            prof.FullName,
			TargetRole:      prof.TargetRole,
			YearsExperience: prof.YearsExperience,
		},
	}, nil
}

func (s *settingsService) Update(ctx context.Context, userID string, in SettingsUpdate) error {
	const op = "SettingsService.Update"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	now := time.Now().UTC()

	if in.Profile != nil {
		prof, err := s.loadProfile(ctx, userID)
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to get profile", err)
		}
		prof.FullName = in.Profile.Name
		prof.TargetRole = in.Profile.TargetRole
		prof.YearsExperience = in.Profile.YearsExperience
		prof.UpdatedAt = now
		if err := s.profiles.Upsert(ctx, prof); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
		}
	}

	if in.Filters != nil || in.Notifications != nil {
		prefs, err := s.loadPreferences(ctx, userID)
		if err != nil {
			return utils.E(utils.CodeInternal, op, "failed to get preferences", err)
		}
		if in.Filters != nil {
			prefs.MinScore = in.Filters.MinScore
			prefs.Locations = in.Filters.Locations
			prefs.SalaryMin = in.Filters.SalaryMin
			prefs.SalaryMax = in.Filters.SalaryMax
			prefs.JobTypes = in.Filters.JobTypes
		}
		if in.Notifications != nil {
			prefs.EmailNotifications = in.Notifications.EmailEnabled
			prefs.DailyDigest = in.Notifications.DailyDigest
			prefs.InstantAlerts = in.Notifications.InstantAlerts
			if in.Notifications.MinScoreForAlert > 0 {
				prefs.MinScoreForAlert = in.Notifications.MinScoreForAlert
			}
		}
		prefs.UpdatedAt = now
		if err := s.prefs.Upsert(ctx, prefs); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to upsert preferences", err)
		}
	}

	return nil
}

func (s *settingsService) AutomationProfile(ctx context.Context, userID string) (*AutomationProfile, error) {
	const op = "SettingsService.AutomationProfile"

	var (
		prof *models.Profile
		err  error
	)
	if userID == "" {
		prof, err = s.profiles.Latest(ctx)
	} else {
		prof, err = s.profiles.GetByUserID(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no profile found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	prefs, err := s.loadPreferences(ctx, prof.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get preferences", err)
	}

	out := &AutomationProfile{
		TargetRole:  prof.TargetRole,
		Skills:      splitSkills(prof.Skills),
		MinScore:    prefs.MinScore,
		UserName:    prof.FullName,
		WorkHistory: prof.WorkHistory,
	}
	if out.TargetRole == "" {
		out.TargetRole = "AI Automation Engineer"
	}
	if out.UserName == "" {
		out.UserName = "User"
	}
	return out, nil
}

// loadProfile returns a blank profile when the user has none yet.
func (s *settingsService) loadProfile(ctx context.Context, userID string) (*models.Profile, error) {
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return &models.Profile{UserID: userID}, nil
	}
	return prof, err
}

// loadPreferences returns the documented defaults when no row exists.
func (s *settingsService) loadPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	prefs, err := s.prefs.GetByUserID(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return &models.Preferences{
			UserID:             userID,
			MinScore:           models.DefaultMinScore,
			MinScoreForAlert:   models.DefaultMinScoreForAlert,
			JobTypes:           []string{"Full-time", "Remote"},
			EmailNotifications: true,
			DailyDigest:        true,
		}, nil
	}
	return prefs, err
}

func splitSkills(skills string) []string {
	out := []string{}
	for _, s := range strings.Split(skills, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
