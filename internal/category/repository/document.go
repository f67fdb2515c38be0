package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/store"
	"go.uber.org/zap"
)

// DocumentRepository keeps each user's categories as one JSON array in the
// key-value store.
type DocumentRepository struct {
	store  *store.Store
	logger logger.ZapLogger
}

func NewDocumentRepository(s *store.Store, log logger.ZapLogger) *DocumentRepository {
	return &DocumentRepository{store: s, logger: log}
}

func (r *DocumentRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := store.Modify(ctx, r.store, c.OwnerID, store.Categories, func(cats []model.Category) ([]model.Category, error) {
		return append(cats, *c), nil
	})
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindAll(ctx context.Context, ownerID string) ([]model.Category, error) {
	cats, err := store.LoadAll[model.Category](ctx, r.store, ownerID, store.Categories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return r.owned(ownerID, cats), nil
}

func (r *DocumentRepository) Update(ctx context.Context, c *model.Category) error {
	_, err := store.Modify(ctx, r.store, c.OwnerID, store.Categories, func(cats []model.Category) ([]model.Category, error) {
		for i := range cats {
			if cats[i].ID == c.ID && cats[i].OwnerID == c.OwnerID {
				cats[i] = *c
				return cats, nil
			}
		}
		return nil, apperror.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("update category %s: %w", c.ID, err)
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	_, err := store.Modify(ctx, r.store, ownerID, store.Categories, func(cats []model.Category) ([]model.Category, error) {
		kept := make([]model.Category, 0, len(cats))
		for _, c := range cats {
			if c.ID == id && c.OwnerID == ownerID {
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) == len(cats) {
			return cats, store.ErrUnchanged
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

func (r *DocumentRepository) owned(ownerID string, cats []model.Category) []model.Category {
	out := make([]model.Category, 0, len(cats))
	for _, c := range cats {
		if c.OwnerID != ownerID {
			r.logger.Warn("skipping category with foreign owner",
				zap.String("owner_id", ownerID),
				zap.String("category_id", c.ID),
			)
			continue
		}
		out = append(out, c)
	}
	return out
}
