package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/careers"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var jobApplicationList = listQuery{
	sortFields: JobApplicationSortFields,
	filterColumns: map[string]string{
		"status":           "status",
		"position_applied": "position_applied",
	},
	searchColumns: []string{"full_name", "email", "position_applied"},
}

// GormJobApplicationRepository implements careers.Repository using GORM
type GormJobApplicationRepository struct {
	db *gorm.DB
}

// NewGormJobApplicationRepository creates a new GormJobApplicationRepository
func NewGormJobApplicationRepository(db *gorm.DB) *GormJobApplicationRepository {
	return &GormJobApplicationRepository{db: db}
}

// FindByID finds a job application by its ID
func (r *GormJobApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*careers.JobApplication, error) {
	var model models.JobApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists job applications matching the filter
func (r *GormJobApplicationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]careers.JobApplication, error) {
	var rows []models.JobApplicationModel
	query := jobApplicationList.apply(r.db.WithContext(ctx).Model(&models.JobApplicationModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]careers.JobApplication, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Count counts job applications matching the filter, ignoring paging
func (r *GormJobApplicationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := jobApplicationList.where(r.db.WithContext(ctx).Model(&models.JobApplicationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new job application or updates an existing one
func (r *GormJobApplicationRepository) Save(ctx context.Context, app *careers.JobApplication) error {
	model := models.JobApplicationModelFromDomain(app)
	err := saveVersioned(r.db.WithContext(ctx), model, app.ID, app.Version)
	return TranslateError(err, writeOp(app.Version), SubjectApplication)
}
