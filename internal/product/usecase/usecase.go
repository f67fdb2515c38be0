package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/pkg/broker"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/product"
	"github.com/fekuna/gesstock-service/internal/product/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

type productUseCase struct {
	repo      product.Repository
	publisher broker.Publisher
	logger    logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, publisher broker.Publisher, log logger.ZapLogger) product.UseCase {
	if publisher == nil {
		publisher = broker.NopPublisher{}
	}
	return &productUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// CreateProduct does not check that the category exists.
func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.OwnerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	p := &model.Product{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Quantity:   input.Quantity,
		PriceCents: input.PriceCents,
		CategoryID: input.CategoryID,
		OwnerID:    input.OwnerID,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.logger.Info("product created",
		zap.String("owner_id", p.OwnerID),
		zap.String("product_id", p.ID),
		zap.Int("quantity", p.Quantity),
	)
	uc.publish(ctx, EventProductCreated, p)
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, ownerID string) ([]model.Product, error) {
	if ownerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	return uc.repo.FindAll(ctx, ownerID)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.OwnerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	p := &model.Product{
		ID:         input.ID,
		Name:       input.Name,
		Quantity:   input.Quantity,
		PriceCents: input.PriceCents,
		CategoryID: input.CategoryID,
		OwnerID:    input.OwnerID,
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(ctx, EventProductUpdated, p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return apperror.ErrUnauthenticated
	}
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	uc.publish(ctx, EventProductDeleted, &model.Product{ID: id, OwnerID: ownerID})
	return nil
}

func (uc *productUseCase) ResolveBarcode(ctx context.Context, ownerID, code string) (*model.Product, error) {
	if ownerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	if strings.TrimSpace(code) == "" {
		return nil, apperror.NewValidationError("code", "cannot be blank")
	}

	products, err := uc.repo.FindAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == code {
			return &products[i], nil
		}
	}

	uc.logger.Debug("barcode did not match any product", zap.String("owner_id", ownerID), zap.String("code", code))
	return nil, product.ErrProductNotFound
}

// publish reports failures in the log only; the write has already succeeded.
// Pass a broker.AsyncPublisher to keep the send off the request path.
func (uc *productUseCase) publish(ctx context.Context, eventType string, p *model.Product) {
	event := broker.NewEvent(eventType, p.OwnerID, *p)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("failed to publish product event",
			zap.String("event_type", eventType),
			zap.String("product_id", p.ID),
			zap.Error(err),
		)
	}
}
