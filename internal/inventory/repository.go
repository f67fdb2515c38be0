package inventory

import (
	"context"

	"github.com/fekuna/gesstock-service/internal/model"
)

type Repository interface {
	// ListStock returns the owner's products in insertion order with their
	// category names resolved.
	ListStock(ctx context.Context, ownerID string) ([]model.StockItem, error)
}
