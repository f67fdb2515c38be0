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

// DocumentRepository keeps each user's products as one JSON array in the
// key-value store.
type DocumentRepository struct {
	store  *store.Store
	logger logger.ZapLogger
}

func NewDocumentRepository(s *store.Store, log logger.ZapLogger) *DocumentRepository {
	return &DocumentRepository{store: s, logger: log}
}

func (r *DocumentRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := store.Modify(ctx, r.store, p.OwnerID, store.Products, func(products []model.Product) ([]model.Product, error) {
		return append(products, *p), nil
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *DocumentRepository) FindAll(ctx context.Context, ownerID string) ([]model.Product, error) {
	products, err := store.LoadAll[model.Product](ctx, r.store, ownerID, store.Products)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.OwnerID != ownerID {
			r.logger.Warn("skipping product with foreign owner",
				zap.String("owner_id", ownerID),
				zap.String("product_id", p.ID),
			)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *DocumentRepository) Update(ctx context.Context, p *model.Product) error {
	_, err := store.Modify(ctx, r.store, p.OwnerID, store.Products, func(products []model.Product) ([]model.Product, error) {
		for i := range products {
			if products[i].ID == p.ID && products[i].OwnerID == p.OwnerID {
				products[i] = *p
				return products, nil
			}
		}
		return nil, apperror.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	_, err := store.Modify(ctx, r.store, ownerID, store.Products, func(products []model.Product) ([]model.Product, error) {
		kept := make([]model.Product, 0, len(products))
		for _, p := range products {
			if p.ID == id && p.OwnerID == ownerID {
				continue
			}
			kept = append(kept, p)
		}
		if len(kept) == len(products) {
			return products, store.ErrUnchanged
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
