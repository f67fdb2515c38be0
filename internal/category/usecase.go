package category

import (
	"context"

	"github.com/fekuna/gesstock-service/internal/category/dto"
	"github.com/fekuna/gesstock-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	ListCategories(ctx context.Context, ownerID string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error
}
