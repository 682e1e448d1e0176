package inquiry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
)

// Repository persists service enquiries. Listing is newest first unless
// the filter says otherwise. The filter's Filters map accepts
// "service_type" and "status".
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceInquiry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ServiceInquiry, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save inserts a new enquiry or updates an existing one
	Save(ctx context.Context, inquiry *ServiceInquiry) error
}
