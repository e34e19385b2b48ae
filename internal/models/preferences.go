package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	DefaultMinScore         = 7
	DefaultMinScoreForAlert = 8
)

// Preferences holds the per-user filtering and notification configuration.
// One row per user, written only via upsert.
type Preferences struct {
	UserID string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	MinScore         int `gorm:"column:min_score;default:7" json:"min_score"`
	MinScoreForAlert int `gorm:"column:min_score_for_alert;default:8" json:"min_score_for_alert"`

	Locations pq.StringArray `gorm:"column:locations;type:text[]" json:"locations"`
	SalaryMin *int           `gorm:"column:salary_min" json:"salary_min"`
	SalaryMax *int           `gorm:"column:salary_max" json:"salary_max"`
	JobTypes  pq.StringArray `gorm:"column:job_types;type:text[]" json:"job_types"`

	EmailNotifications bool `gorm:"column:email_notifications;default:true" json:"email_notifications"`
	DailyDigest        bool `gorm:"column:daily_digest;default:true" json:"daily_digest"`
	InstantAlerts      bool `gorm:"column:instant_alerts;default:false" json:"instant_alerts"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Preferences) TableName() string { return "preferences" }
