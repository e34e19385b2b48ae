package models

import "time"

// Profile feeds the external scoring pipeline: target role, skills and work
// history are sent verbatim to the scorer.
type Profile struct {
	UserID          string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName        string `gorm:"column:full_name;type:text" json:"full_name"`
	Email           string `gorm:"column:email;type:text" json:"email"`
	TargetRole      string `gorm:"column:target_role;type:text" json:"target_role"`
	Skills          string `gorm:"column:skills;type:text" json:"skills"` // newline separated
	YearsExperience int    `gorm:"column:years_experience" json:"years_experience"`
	WorkHistory     string `gorm:"column:work_history;type:text" json:"work_history"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
