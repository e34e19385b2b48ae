package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careerpilot/careerpilot/internal/models"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Preferences, error)
	Upsert(ctx context.Context, p *models.Preferences) error
}

type preferencesRepo struct {
	db *gorm.DB
}

func NewPreferencesRepo(db *gorm.DB) PreferencesRepository {
	return &preferencesRepo{db: db}
}

func (r *preferencesRepo) GetByUserID(ctx context.Context, userID string) (*models.Preferences, error) {
	var p models.Preferences
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *preferencesRepo) Upsert(ctx context.Context, p *models.Preferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"min_score", "min_score_for_alert", "locations", "salary_min", "salary_max", "job_types", "email_notifications", "daily_digest", "instant_alerts", "updated_at"}),
		}).
		Create(p).Error
}
