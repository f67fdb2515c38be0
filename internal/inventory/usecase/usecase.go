package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/inventory"
	"github.com/fekuna/gesstock-service/internal/inventory/dto"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/money"
	"github.com/fekuna/gesstock-service/internal/pkg/broker"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/product"
	"go.uber.org/zap"
)

const (
	EventBarcodeResolved = "barcode.resolved"
	EventBarcodeNotFound = "barcode.not_found"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	products  product.UseCase
	publisher broker.Publisher
	logger    logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, products product.UseCase, publisher broker.Publisher, log logger.ZapLogger) inventory.UseCase {
	if publisher == nil {
		publisher = broker.NopPublisher{}
	}
	return &inventoryUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, filter *dto.StockFilter) (*dto.StockView, error) {
	if filter.OwnerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	if err := filter.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	items, err := uc.repo.ListStock(ctx, filter.OwnerID)
	if err != nil {
		return nil, err
	}

	view := &dto.StockView{Items: make([]dto.StockLine, 0, len(items))}
	for _, item := range items {
		p := item.Product
		if filter.LowStock != nil && p.Quantity > *filter.LowStock {
			continue
		}

		value, err := money.MulCents(p.PriceCents, p.Quantity)
		if err != nil {
			return nil, fmt.Errorf("stock value of product %s: %w", p.ID, err)
		}
		total, err := money.AddCents(view.TotalValueCents, value)
		if err != nil {
			return nil, fmt.Errorf("stock total: %w", err)
		}
		view.Items = append(view.Items, dto.StockLine{
			ProductID:     p.ID,
			Name:          p.Name,
			Quantity:      p.Quantity,
			PriceCents:    p.PriceCents,
			PriceDisplay:  money.CentsToDisplay(p.PriceCents),
			CategoryID:    p.CategoryID,
			CategoryName:  item.CategoryName,
			CategoryFound: item.CategoryFound,
			ValueCents:    value,
		})
		view.TotalQuantity += p.Quantity
		view.TotalValueCents = total
	}
	view.TotalProducts = len(view.Items)
	view.TotalValueDisplay = money.CentsToDisplay(view.TotalValueCents)
	return view, nil
}

func (uc *inventoryUseCase) ProcessScan(ctx context.Context, input *dto.ScanInput) (*model.Product, error) {
	code := strings.TrimSpace(input.Code)

	p, err := uc.products.ResolveBarcode(ctx, input.OwnerID, input.Code)
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		uc.publishOutcome(ctx, EventBarcodeNotFound, input.OwnerID, dto.ScanOutcome{Code: code})
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("resolve barcode %q: %w", code, err)
	}

	uc.publishOutcome(ctx, EventBarcodeResolved, input.OwnerID, dto.ScanOutcome{
		Code:      code,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
	})
	return p, nil
}

func (uc *inventoryUseCase) publishOutcome(ctx context.Context, eventType, ownerID string, outcome dto.ScanOutcome) {
	if err := uc.publisher.Publish(ctx, broker.NewEvent(eventType, ownerID, outcome)); err != nil {
		uc.logger.Warn("failed to publish scan outcome",
			zap.String("event_type", eventType),
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
	}
}
