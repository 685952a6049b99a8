package repository

import (
	"context"

	"comic-catalog/internal/domain"
)

// WishListRepository defines persistence operations for WishList entities.
type WishListRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.WishList, error)
	GetByID(ctx context.Context, id int64) (*domain.WishList, error)
	Create(ctx context.Context, item *domain.WishList) (int64, error)
	Update(ctx context.Context, item *domain.WishList) error
	Delete(ctx context.Context, id int64) error
}
