package careers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
)

// Repository persists job applications. The filter's Filters map accepts
// "status" and "position_applied".
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JobApplication, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]JobApplication, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, app *JobApplication) error
}
