package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/internal/models"
	"github.com/careerpilot/careerpilot/internal/services"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	latest   string // user id returned by Latest
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeProfileRepo) Latest(_ context.Context) (*models.Profile, error) {
	if p, ok := f.profiles[f.latest]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *models.Profile) error {
	if f.profiles == nil {
		f.profiles = map[string]*models.Profile{}
	}
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func TestSettingsGet_DefaultsWhenNoRows(t *testing.T) {
	svc := services.NewSettingsService(&fakeProfileRepo{}, &fakePrefsRepo{})

	got, err := svc.Get(context.Background(), ownerA)
	require.NoError(t, err)

	assert.Equal(t, 7, got.Filters.MinScore)
	assert.Equal(t, []string{"Full-time", "Remote"}, got.Filters.JobTypes)
	assert.Equal(t, []string{}, got.Filters.Locations)
	assert.True(t, got.Notifications.EmailEnabled)
	assert.True(t, got.Notifications.DailyDigest)
	assert.False(t, got.Notifications.InstantAlerts)
	assert.Equal(t, 8, got.Notifications.MinScoreForAlert)
	assert.Empty(t, got.Email)
}

func TestSettingsUpdate_UpsertsBothRows(t *testing.T) {
	profiles := &fakeProfileRepo{}
	prefs := &fakePrefsRepo{}
	svc := services.NewSettingsService(profiles, prefs)

	err := svc.Update(context.Background(), ownerA, services.SettingsUpdate{
		Filters: &services.SettingsFilters{
			MinScore:  6,
			Locations: []string{"Remote"},
			JobTypes:  []string{"Full-time"},
		},
		Profile: &services.SettingsProfile{
			Name:            "Ada",
			TargetRole:      "Platform Engineer",
			YearsExperience: 8,
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), ownerA)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Filters.MinScore)
	assert.Equal(t, []string{"Remote"}, got.Filters.Locations)
	assert.Equal(t, "Ada", got.Profile.Name)
	assert.Equal(t, "Platform Engineer", got.Profile.TargetRole)
	assert.Equal(t, 8, got.Profile.YearsExperience)
}

func TestSettingsUpdate_NilSectionsLeaveStateAlone(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		ownerA: {UserID: ownerA, FullName: "Ada", WorkHistory: "10 years of infra"},
	}}
	svc := services.NewSettingsService(profiles, &fakePrefsRepo{})

	err := svc.Update(context.Background(), ownerA, services.SettingsUpdate{
		Profile: &services.SettingsProfile{Name: "Ada L.", TargetRole: "SRE"},
	})
	require.NoError(t, err)

	// fields outside the settings document survive the upsert
	assert.Equal(t, "10 years of infra", profiles.profiles[ownerA].WorkHistory)
	assert.Equal(t, "Ada L.", profiles.profiles[ownerA].FullName)
}

func TestAutomationProfile_ExplicitOwner(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		ownerA: {
			UserID:      ownerA,
			FullName:    "Ada",
			TargetRole:  "Platform Engineer",
			Skills:      "Go\nPostgres\n\n  Kubernetes  ",
			WorkHistory: "infra since 2016",
		},
	}}
	prefs := &fakePrefsRepo{prefs: map[string]*models.Preferences{
		ownerA: {UserID: ownerA, MinScore: 6},
	}}
	svc := services.NewSettingsService(profiles, prefs)

	got, err := svc.AutomationProfile(context.Background(), ownerA)
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", got.TargetRole)
	assert.Equal(t, []string{"Go", "Postgres", "Kubernetes"}, got.Skills)
	assert.Equal(t, 6, got.MinScore)
	assert.Equal(t, "Ada", got.UserName)
	assert.Equal(t, "infra since 2016", got.WorkHistory)
}

func TestAutomationProfile_FallsBackToLatest(t *testing.T) {
	profiles := &fakeProfileRepo{
		profiles: map[string]*models.Profile{
			ownerB: {UserID: ownerB, FullName: "Grace"},
		},
		latest: ownerB,
	}
	svc := services.NewSettingsService(profiles, &fakePrefsRepo{})

	got, err := svc.AutomationProfile(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.UserName)
	assert.Equal(t, 7, got.MinScore) // default when no preferences row
	assert.Equal(t, "AI Automation Engineer", got.TargetRole)
}

func TestAutomationProfile_NoProfileAnywhere(t *testing.T) {
	svc := services.NewSettingsService(&fakeProfileRepo{}, &fakePrefsRepo{})

	_, err := svc.AutomationProfile(context.Background(), "")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
