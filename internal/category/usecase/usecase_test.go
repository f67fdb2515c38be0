package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/category"
	"github.com/fekuna/gesstock-service/internal/category/dto"
	"github.com/fekuna/gesstock-service/internal/category/repository"
	"github.com/fekuna/gesstock-service/internal/category/usecase"
	"github.com/fekuna/gesstock-service/internal/pkg/broker"
	"github.com/fekuna/gesstock-service/internal/pkg/broker/brokertest"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc      category.UseCase
	backend *store.MemoryBackend
	events  *brokertest.Recorder
}

func newFixture() *fixture {
	backend := store.NewMemoryBackend()
	s := store.New(backend, store.NewKeyedMutex(), logger.NewNop())
	events := &brokertest.Recorder{}
	repo := repository.NewDocumentRepository(s, logger.NewNop())
	return &fixture{
		uc:      usecase.NewCategoryUseCase(repo, events, logger.NewNop()),
		backend: backend,
		events:  events,
	}
}

func TestCreateCategoryTrimsAndAssignsID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cat, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "  Bebidas  "})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", cat.Name)
	assert.Equal(t, "u1", cat.OwnerID)
	assert.NotEmpty(t, cat.ID)

	list, err := f.uc.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *cat, list[0])

	assert.Equal(t, []string{usecase.EventCategoryCreated}, f.events.Types())
}

func TestCategoryEventsDeliveredBeforeAsyncPublisherCloses(t *testing.T) {
	backend := store.NewMemoryBackend()
	s := store.New(backend, store.NewKeyedMutex(), logger.NewNop())
	rec := &brokertest.Recorder{}
	events := broker.NewAsyncPublisher(rec, time.Second, logger.NewNop())
	uc := usecase.NewCategoryUseCase(repository.NewDocumentRepository(s, logger.NewNop()), events, logger.NewNop())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "Bebidas"})
	require.NoError(t, err)
	require.NoError(t, uc.DeleteCategory(ctx, "u1", cat.ID))

	require.NoError(t, events.Close())
	assert.ElementsMatch(t, []string{usecase.EventCategoryCreated, usecase.EventCategoryDeleted}, rec.Types())
	assert.True(t, rec.Closed())
}

func TestCreateCategoryIDsAreUnique(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "A"})
	require.NoError(t, err)
	b, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "B"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	list, err := f.uc.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "B", list[1].Name)
}

func TestCreateCategoryBlankNameWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "   "})
	require.Error(t, err)

	var ve *apperror.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.HasField("name"))

	_, getErr := f.backend.Get(ctx, store.Key("u1", store.Categories))
	assert.ErrorIs(t, getErr, store.ErrKeyNotFound)
}

func TestOperationsRequireOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "X"})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	_, err = f.uc.ListCategories(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	assert.ErrorIs(t, f.uc.DeleteCategory(ctx, "", "id"), apperror.ErrUnauthenticated)
}

func TestDeleteCategoryPreservesOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		c, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: name})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	require.NoError(t, f.uc.DeleteCategory(ctx, "u1", ids[1]))

	list, err := f.uc.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "C", list[1].Name)
}

func TestDeleteUnknownCategoryIsNoop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteCategory(ctx, "u1", "missing"))

	list, err := f.uc.ListCategories(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateCategory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cat, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "Old"})
	require.NoError(t, err)

	updated, err := f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cat.ID, OwnerID: "u1", Name: " New "})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	list, err := f.uc.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "New", list[0].Name)

	_, err = f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "missing", OwnerID: "u1", Name: "X"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cat.ID, OwnerID: "u2", Name: "Stolen"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCategoriesAreScopedByOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{OwnerID: "u1", Name: "Mine"})
	require.NoError(t, err)

	list, err := f.uc.ListCategories(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	f := newFixture()
	f.events.Err = errors.New("broker down")

	_, err := f.uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{OwnerID: "u1", Name: "A"})
	assert.NoError(t, err)
}
