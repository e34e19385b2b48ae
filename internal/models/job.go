package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job statuses as rendered by the dashboard pipeline. Transitions are not
// constrained: any status may follow any other.
const (
	StatusFound        = "Found"
	StatusApplied      = "Applied"
	StatusInterviewing = "Interviewing"
	StatusOffered      = "Offered"
	StatusRejected     = "Rejected"
)

type Job struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index;uniqueIndex:ux_jobs_user_url" json:"user_id"`

	Title   string `gorm:"column:title;type:text;not null" json:"title"`
	Company string `gorm:"column:company;type:text;not null" json:"company"`
	// URL is stored normalized (query string stripped). The unique index is
	// partial so rows without a URL never collide with each other.
	URL string `gorm:"column:url;type:text;uniqueIndex:ux_jobs_user_url,where:url <> ''" json:"url"`

	Score     int    `gorm:"column:score" json:"score"`
	Reasoning string `gorm:"column:reasoning;type:text" json:"reasoning"`

	Status string         `gorm:"column:status;type:text;default:'Found'" json:"status"`
	Tags   pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`
	Notes  string         `gorm:"column:notes;type:text" json:"notes"`

	TailoredResume string `gorm:"column:tailored_resume;type:text" json:"tailored_resume"`
	CoverLetter    string `gorm:"column:cover_letter;type:text" json:"cover_letter"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
