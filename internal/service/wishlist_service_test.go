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

func newWishListFixture(t *testing.T) (WishListService, int64, int64) {
	t.Helper()
	db := openTestDB(t)
	users := sqlite.NewUserRepository(db)
	comics := sqlite.NewComicRepository(db)
	wishlists := sqlite.NewWishListRepository(db)
	ctx := context.Background()

	userID := createUser(t, users, "wanda", "hexhexhex", false)
	comic := domain.Comic{MarvelID: 616, Title: "House of M"}
	_, err := comics.GetOrCreate(ctx, &comic)
	require.NoError(t, err)

	return NewWishListService(wishlists, users, comics), userID, comic.ID
}

func TestWishListCreateAndGet(t *testing.T) {
	svc, userID, comicID := newWishListFixture(t)
	ctx := context.Background()

	item := domain.WishList{UserID: userID, ComicID: comicID, Favorite: true, WishedQty: 2}
	require.NoError(t, svc.Create(ctx, &item))
	require.NotZero(t, item.ID)

	got, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
	assert.Equal(t, 2, got.WishedQty)
}

func TestWishListCreateDanglingRefs(t *testing.T) {
	svc, userID, comicID := newWishListFixture(t)
	ctx := context.Background()

	err := svc.Create(ctx, &domain.WishList{UserID: 9999, ComicID: comicID})
	assert.True(t, errors.Is(err, ErrWishListUserMissing))

	err = svc.Create(ctx, &domain.WishList{UserID: userID, ComicID: 9999})
	assert.True(t, errors.Is(err, ErrWishListComicMissing))
}

func TestWishListUpdatePartial(t *testing.T) {
	svc, userID, comicID := newWishListFixture(t)
	ctx := context.Background()

	item := domain.WishList{UserID: userID, ComicID: comicID, WishedQty: 1}
	require.NoError(t, svc.Create(ctx, &item))

	cart := true
	updated, err := svc.Update(ctx, item.ID, WishListUpdate{Cart: &cart})
	require.NoError(t, err)
	assert.True(t, updated.Cart)
	assert.Equal(t, 1, updated.WishedQty)
}

func TestWishListDeleteMissing(t *testing.T) {
	svc, _, _ := newWishListFixture(t)

	err := svc.Delete(context.Background(), 12345)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
