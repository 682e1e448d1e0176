package dsc

import (
	"context"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
)

// Repository persists DSC applications. The filter's Filters map accepts
// "status", "dsc_class" and "application_type".
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Application, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	Save(ctx context.Context, app *Application) error
}
