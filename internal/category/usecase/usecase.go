package usecase

import (
	"context"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/category"
	"github.com/fekuna/gesstock-service/internal/category/dto"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/pkg/broker"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
)

type categoryUseCase struct {
	repo      category.Repository
	publisher broker.Publisher
	logger    logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, publisher broker.Publisher, log logger.ZapLogger) category.UseCase {
	if publisher == nil {
		publisher = broker.NopPublisher{}
	}
	return &categoryUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.OwnerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	cat := &model.Category{
		ID:      uuid.New().String(),
		Name:    input.Name,
		OwnerID: input.OwnerID,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.logger.Info("category created", zap.String("owner_id", cat.OwnerID), zap.String("category_id", cat.ID))
	uc.publish(ctx, EventCategoryCreated, cat)
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, ownerID string) ([]model.Category, error) {
	if ownerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	return uc.repo.FindAll(ctx, ownerID)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	if input.OwnerID == "" {
		return nil, apperror.ErrUnauthenticated
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	cat := &model.Category{
		ID:      input.ID,
		Name:    input.Name,
		OwnerID: input.OwnerID,
	}
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	uc.publish(ctx, EventCategoryUpdated, cat)
	return cat, nil
}

// DeleteCategory leaves products that reference the category untouched.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return apperror.ErrUnauthenticated
	}
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	uc.publish(ctx, EventCategoryDeleted, &model.Category{ID: id, OwnerID: ownerID})
	return nil
}

// publish reports failures in the log only; the write has already succeeded.
// Pass a broker.AsyncPublisher to keep the send off the request path.
func (uc *categoryUseCase) publish(ctx context.Context, eventType string, cat *model.Category) {
	event := broker.NewEvent(eventType, cat.OwnerID, *cat)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("failed to publish category event",
			zap.String("event_type", eventType),
			zap.String("category_id", cat.ID),
			zap.Error(err),
		)
	}
}
