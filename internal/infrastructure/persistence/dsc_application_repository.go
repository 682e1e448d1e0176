package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/dsc"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var dscApplicationList = listQuery{
	sortFields: DSCApplicationSortFields,
	filterColumns: map[string]string{
		"status":           "status",
		"dsc_class":        "dsc_class",
		"application_type": "application_type",
	},
	searchColumns: []string{"applicant_name", "email", "pan_number"},
}

// GormDSCApplicationRepository implements dsc.Repository using GORM
type GormDSCApplicationRepository struct {
	db *gorm.DB
}

// NewGormDSCApplicationRepository creates a new GormDSCApplicationRepository
func NewGormDSCApplicationRepository(db *gorm.DB) *GormDSCApplicationRepository {
	return &GormDSCApplicationRepository{db: db}
}

// FindByID finds an application by its ID
func (r *GormDSCApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*dsc.Application, error) {
	var model models.DSCApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists applications matching the filter
func (r *GormDSCApplicationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]dsc.Application, error) {
	var rows []models.DSCApplicationModel
	query := dscApplicationList.apply(r.db.WithContext(ctx).Model(&models.DSCApplicationModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDSCApplications(rows), nil
}

// Count counts applications matching the filter, ignoring paging
func (r *GormDSCApplicationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := dscApplicationList.where(r.db.WithContext(ctx).Model(&models.DSCApplicationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts applications in one processing state
func (r *GormDSCApplicationRepository) CountByStatus(ctx context.Context, status dsc.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DSCApplicationModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new application or updates an existing one. A second
// open application for the same PAN and type is rejected as a duplicate.
func (r *GormDSCApplicationRepository) Save(ctx context.Context, app *dsc.Application) error {
	model := models.DSCApplicationModelFromDomain(app)
	err := saveVersioned(r.db.WithContext(ctx), model, app.ID, app.Version)
	return TranslateError(err, writeOp(app.Version), SubjectApplication)
}

func toDSCApplications(rows []models.DSCApplicationModel) []dsc.Application {
	out := make([]dsc.Application, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}
