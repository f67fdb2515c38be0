package category

import (
	"context"

	"github.com/fekuna/gesstock-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context, ownerID string) ([]model.Category, error)
	// Update returns apperror.ErrNotFound when the category does not exist.
	Update(ctx context.Context, category *model.Category) error
	// Delete succeeds when the id is absent.
	Delete(ctx context.Context, ownerID, id string) error
}
