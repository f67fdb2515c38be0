package inventory

import (
	"context"

	"github.com/fekuna/gesstock-service/internal/inventory/dto"
	"github.com/fekuna/gesstock-service/internal/model"
)

type UseCase interface {
	GetStock(ctx context.Context, filter *dto.StockFilter) (*dto.StockView, error)
	// ProcessScan resolves a scanned code and publishes the outcome.
	ProcessScan(ctx context.Context, input *dto.ScanInput) (*model.Product, error)
}
