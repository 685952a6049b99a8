package service

import (
	"context"
	"errors"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

var (
	// ErrWishListUserMissing indicates the referenced user does not exist.
	ErrWishListUserMissing = errors.New("wishlist user does not exist")
	// ErrWishListComicMissing indicates the referenced comic does not exist.
	ErrWishListComicMissing = errors.New("wishlist comic does not exist")
)

// WishListUpdate carries the fields supplied in a partial update. Nil fields
// are left untouched.
type WishListUpdate struct {
	UserID    *int64
	ComicID   *int64
	Favorite  *bool
	Cart      *bool
	WishedQty *int
}

// WishListService describes wishlist operations.
type WishListService interface {
	List(ctx context.Context) ([]domain.WishList, error)
	Get(ctx context.Context, id int64) (*domain.WishList, error)
	Create(ctx context.Context, item *domain.WishList) error
	Update(ctx context.Context, id int64, upd WishListUpdate) (*domain.WishList, error)
	Delete(ctx context.Context, id int64) error
}

type wishListService struct {
	wishlists repository.WishListRepository
	users     repository.UserRepository
	comics    repository.ComicRepository
}

func NewWishListService(wishlists repository.WishListRepository, users repository.UserRepository, comics repository.ComicRepository) WishListService {
	return &wishListService{wishlists: wishlists, users: users, comics: comics}
}

func (s *wishListService) List(ctx context.Context) ([]domain.WishList, error) {
	return s.wishlists.List(ctx)
}

func (s *wishListService) Get(ctx context.Context, id int64) (*domain.WishList, error) {
	return s.wishlists.GetByID(ctx, id)
}

func (s *wishListService) Create(ctx context.Context, item *domain.WishList) error {
	if err := s.checkUser(ctx, item.UserID); err != nil {
		return err
	}
	if err := s.checkComic(ctx, item.ComicID); err != nil {
		return err
	}
	_, err := s.wishlists.Create(ctx, item)
	return err
}

func (s *wishListService) Update(ctx context.Context, id int64, upd WishListUpdate) (*domain.WishList, error) {
	item, err := s.wishlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.UserID != nil {
		if err := s.checkUser(ctx, *upd.UserID); err != nil {
			return nil, err
		}
		item.UserID = *upd.UserID
	}
	if upd.ComicID != nil {
		if err := s.checkComic(ctx, *upd.ComicID); err != nil {
			return nil, err
		}
		item.ComicID = *upd.ComicID
	}
	if upd.Favorite != nil {
		item.Favorite = *upd.Favorite
	}
	if upd.Cart != nil {
		item.Cart = *upd.Cart
	}
	if upd.WishedQty != nil {
		item.WishedQty = *upd.WishedQty
	}
	if err := s.wishlists.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *wishListService) Delete(ctx context.Context, id int64) error {
	return s.wishlists.Delete(ctx, id)
}

func (s *wishListService) checkUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWishListUserMissing
		}
		return err
	}
	return nil
}

func (s *wishListService) checkComic(ctx context.Context, id int64) error {
	if _, err := s.comics.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWishListComicMissing
		}
		return err
	}
	return nil
}
