package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careerpilot/careerpilot/internal/models"
	"github.com/careerpilot/careerpilot/internal/utils"
)

type JobRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Job, error)
	GetByID(ctx context.Context, userID, id string) (*models.Job, error)
	FindByURL(ctx context.Context, userID, url string) (*models.Job, error)
	FindByTitleCompany(ctx context.Context, userID, title, company string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	// UpsertByURL inserts the job, folding into the existing row when another
	// ingestion already claimed (user_id, url). Only valid for non-empty URLs.
	UpsertByURL(ctx context.Context, job *models.Job) error
	Save(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, userID, id string) (int64, error)
	DeleteByIDs(ctx context.Context, userID string, ids []string) (int64, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) ListByUser(ctx context.Context, userID string) ([]models.Job, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) GetByID(ctx context.Context, userID, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &job, err
}

func (r *jobRepo) FindByURL(ctx context.Context, userID, url string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND url = ?", userID, url).
		Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &job, err
}

func (r *jobRepo) FindByTitleCompany(ctx context.Context, userID, title, company string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND company = ?", userID, title, company).
		Take(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &job, err
}

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) UpsertByURL(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "user_id"}, {Name: "url"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "url <> ''"}}},
			DoUpdates:   clause.AssignmentColumns([]string{"title", "company", "score", "reasoning", "status", "tags", "notes", "tailored_resume", "cover_letter", "updated_at"}),
		}).
		Create(job).Error
}

func (r *jobRepo) Save(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Job{})
	return res.RowsAffected, res.Error
}

func (r *jobRepo) DeleteByIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.Job{})
	return res.RowsAffected, res.Error
}
