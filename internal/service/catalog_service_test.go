package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
	"comic-catalog/internal/repository/sqlite"
)

func newCatalog(t *testing.T) CatalogService {
	t.Helper()
	db := openTestDB(t)
	return NewCatalogService(sqlite.NewComicRepository(db))
}

func TestGetOrCreateComicRequiresMarvelID(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	comic := domain.Comic{Title: "No ID"}
	_, err := svc.GetOrCreateComic(ctx, &comic)
	assert.True(t, errors.Is(err, ErrMarvelIDRequired))

	// nothing persisted
	comics, err := svc.ListComics(ctx)
	require.NoError(t, err)
	assert.Empty(t, comics)
}

func TestCreateComicDuplicate(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	first := domain.Comic{MarvelID: 7, Title: "First"}
	require.NoError(t, svc.CreateComic(ctx, &first))

	dup := domain.Comic{MarvelID: 7, Title: "Second"}
	err := svc.CreateComic(ctx, &dup)
	assert.True(t, errors.Is(err, ErrComicExists))

	// the stored row keeps the first writer's fields
	got, err := svc.GetComicByMarvelID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestUpdateComicPartial(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	comic := domain.Comic{MarvelID: 99, Title: "Before", Price: 5, StockQty: 2}
	require.NoError(t, svc.CreateComic(ctx, &comic))

	newTitle := "After"
	updated, err := svc.UpdateComic(ctx, comic.ID, ComicUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, 5.0, updated.Price)
	assert.Equal(t, 2, updated.StockQty)
}

func TestUpdateComicByMarvelIDMissing(t *testing.T) {
	svc := newCatalog(t)

	title := "x"
	_, err := svc.UpdateComicByMarvelID(context.Background(), 404, ComicUpdate{Title: &title})
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUpdateComicDuplicateMarvelID(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	a := domain.Comic{MarvelID: 1}
	b := domain.Comic{MarvelID: 2}
	require.NoError(t, svc.CreateComic(ctx, &a))
	require.NoError(t, svc.CreateComic(ctx, &b))

	taken := int64(1)
	_, err := svc.UpdateComic(ctx, b.ID, ComicUpdate{MarvelID: &taken})
	assert.True(t, errors.Is(err, ErrComicExists))
}

func TestDeleteComic(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	comic := domain.Comic{MarvelID: 3}
	require.NoError(t, svc.CreateComic(ctx, &comic))

	require.NoError(t, svc.DeleteComic(ctx, comic.ID))
	err := svc.DeleteComic(ctx, comic.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
