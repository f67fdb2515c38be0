package repository

import (
	"context"
	"testing"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/model"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRepositoryListStock(t *testing.T) {
	backend := store.NewMemoryBackend()
	s := store.New(backend, nil, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, store.SaveAll(ctx, s, "u1", store.Categories, []model.Category{
		{ID: "c1", Name: "Mine", OwnerID: "u1"},
		{ID: "c2", Name: "Foreign", OwnerID: "u2"},
	}))
	require.NoError(t, store.SaveAll(ctx, s, "u1", store.Products, []model.Product{
		{ID: "p1", Name: "A", Quantity: 1, PriceCents: 100, CategoryID: "c1", OwnerID: "u1"},
		{ID: "p2", Name: "B", Quantity: 1, PriceCents: 100, CategoryID: "c2", OwnerID: "u1"},
		{ID: "p3", Name: "C", Quantity: 1, PriceCents: 100, CategoryID: "c1", OwnerID: "u2"},
	}))

	items, err := NewDocumentRepository(s, logger.NewNop()).ListStock(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Mine", items[0].CategoryName)
	assert.True(t, items[0].CategoryFound)
	assert.False(t, items[1].CategoryFound)

	require.NoError(t, backend.Set(ctx, "user_u1_categorias", []byte("[")))
	_, err = NewDocumentRepository(s, logger.NewNop()).ListStock(ctx, "u1")
	assert.True(t, apperror.IsStorageReadError(err))
}
