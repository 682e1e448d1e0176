package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/inquiry"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var inquiryList = listQuery{
	sortFields: InquirySortFields,
	filterColumns: map[string]string{
		"service_type": "service_type",
		"status":       "status",
	},
	searchColumns: []string{"name", "email", "company"},
}

// GormInquiryRepository implements inquiry.Repository using GORM
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewGormInquiryRepository creates a new GormInquiryRepository
func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// FindByID finds an enquiry by its ID
func (r *GormInquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.ServiceInquiry, error) {
	var model models.ServiceInquiryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists enquiries matching the filter
func (r *GormInquiryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inquiry.ServiceInquiry, error) {
	var rows []models.ServiceInquiryModel
	query := inquiryList.apply(r.db.WithContext(ctx).Model(&models.ServiceInquiryModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInquiries(rows), nil
}

// Count counts enquiries matching the filter, ignoring paging
func (r *GormInquiryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := inquiryList.where(r.db.WithContext(ctx).Model(&models.ServiceInquiryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a new enquiry or updates an existing one
func (r *GormInquiryRepository) Save(ctx context.Context, inq *inquiry.ServiceInquiry) error {
	model := models.ServiceInquiryModelFromDomain(inq)
	err := saveVersioned(r.db.WithContext(ctx), model, inq.ID, inq.Version)
	return TranslateError(err, writeOp(inq.Version), SubjectInquiry)
}

func toInquiries(rows []models.ServiceInquiryModel) []inquiry.ServiceInquiry {
	out := make([]inquiry.ServiceInquiry, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}
