package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/internal/models"
	"github.com/careerpilot/careerpilot/internal/services"
)

func notifyFixtures(instantAlerts, emailEnabled bool) (*fakeProfileRepo, *fakePrefsRepo) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		ownerA: {UserID: ownerA, Email: "ada@example.com"},
	}}
	prefs := &fakePrefsRepo{prefs: map[string]*models.Preferences{
		ownerA: {
			UserID:             ownerA,
			MinScoreForAlert:   8,
			InstantAlerts:      instantAlerts,
			EmailNotifications: emailEnabled,
			DailyDigest:        true,
		},
	}}
	return profiles, prefs
}

func TestNotifyEvaluate_Decisions(t *testing.T) {
	cases := []struct {
		name       string
		userID     string
		score      float64
		alerts     bool
		email      bool
		wantOK     bool
		wantReason string
	}{
		{"no owner", "", 9, true, true, false, "no user_id provided"},
		{"below threshold", ownerA, 7.4, true, true, false, "score 7 below threshold 8"},
		{"rounding crosses threshold", ownerA, 7.6, true, true, true, ""},
		{"alerts disabled", ownerA, 9, false, false, false, "email notifications disabled"},
		{"fires", ownerA, 9, true, true, true, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			profiles, prefs := notifyFixtures(c.alerts, c.email)
			svc := services.NewNotifyService(profiles, prefs, quietLogger())

			res, err := svc.Evaluate(context.Background(), services.NotifyInput{
				UserID:  c.userID,
				Title:   "Backend Engineer",
				Company: "Acme",
				Score:   c.score,
			})
			require.NoError(t, err)

			assert.Equal(t, c.wantOK, res.Success)
			if c.wantReason != "" {
				assert.Equal(t, c.wantReason, res.Reason)
			}
			if c.wantOK {
				require.NotNil(t, res.Job)
				assert.Equal(t, "Backend Engineer", res.Job.Title)
				assert.Contains(t, res.Message, "ada@example.com")
			}
		})
	}
}

func TestNotifyEvaluate_NoEmailConfigured(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		ownerA: {UserID: ownerA}, // profile exists, no email
	}}
	svc := services.NewNotifyService(profiles, &fakePrefsRepo{}, quietLogger())

	res, err := svc.Evaluate(context.Background(), services.NotifyInput{UserID: ownerA, Score: 9})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "no email configured", res.Reason)
}

func TestNotifySettings_MasksEmail(t *testing.T) {
	profiles, prefs := notifyFixtures(true, true)
	svc := services.NewNotifyService(profiles, prefs, quietLogger())

	got, err := svc.Settings(context.Background(), ownerA)
	require.NoError(t, err)

	assert.Equal(t, "ada***", got.Email)
	assert.True(t, got.InstantAlerts)
	assert.True(t, got.DailyDigest)
	assert.Equal(t, 8, got.MinScoreForAlert)
}

func TestNotifySettings_DefaultsWithoutRows(t *testing.T) {
	svc := services.NewNotifyService(&fakeProfileRepo{}, &fakePrefsRepo{}, quietLogger())

	got, err := svc.Settings(context.Background(), ownerA)
	require.NoError(t, err)

	assert.Empty(t, got.Email)
	assert.False(t, got.InstantAlerts)
	assert.Equal(t, 8, got.MinScoreForAlert)
}
