package product

import (
	"context"

	"github.com/fekuna/gesstock-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, ownerID string) ([]model.Product, error)
	// Update returns apperror.ErrNotFound when the product does not exist.
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, ownerID, id string) error
}
