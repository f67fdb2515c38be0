package product

import (
	"context"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/product/dto"
)

// ErrProductNotFound is returned when a scanned code matches no product.
var ErrProductNotFound = fmt.Errorf("product not found: %w", apperror.ErrNotFound)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	ListProducts(ctx context.Context, ownerID string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, ownerID, id string) error

	// ResolveBarcode returns the first product whose id equals code.
	ResolveBarcode(ctx context.Context, ownerID, code string) (*model.Product, error)
}
