package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/store"
)

// DocumentRepository joins the two per-user collections in memory.
type DocumentRepository struct {
	store  *store.Store
	logger logger.ZapLogger
}

func NewDocumentRepository(s *store.Store, log logger.ZapLogger) *DocumentRepository {
	return &DocumentRepository{store: s, logger: log}
}

func (r *DocumentRepository) ListStock(ctx context.Context, ownerID string) ([]model.StockItem, error) {
	categories, err := store.LoadAll[model.Category](ctx, r.store, ownerID, store.Categories)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	products, err := store.LoadAll[model.Product](ctx, r.store, ownerID, store.Products)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		if c.OwnerID == ownerID {
			names[c.ID] = c.Name
		}
	}

	items := make([]model.StockItem, 0, len(products))
	for _, p := range products {
		if p.OwnerID != ownerID {
			continue
		}
		name, ok := names[p.CategoryID]
		items = append(items, model.StockItem{
			Product:       p,
			CategoryName:  name,
			CategoryFound: ok,
		})
	}
	return items, nil
}
