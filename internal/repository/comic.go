package repository

import (
	"context"

	"comic-catalog/internal/domain"
)

// ComicRepository defines persistence operations for Comic entities.
type ComicRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Comic, error)
	ListByMarvelID(ctx context.Context) ([]domain.Comic, error)
	GetByID(ctx context.Context, id int64) (*domain.Comic, error)
	GetByMarvelID(ctx context.Context, marvelID int64) (*domain.Comic, error)
	// GetOrCreate inserts the comic unless a row with the same marvel_id
	// already exists, in which case the existing row is loaded into comic.
	// The unique index arbitrates concurrent inserts.
	GetOrCreate(ctx context.Context, comic *domain.Comic) (created bool, err error)
	Update(ctx context.Context, comic *domain.Comic) error
	Delete(ctx context.Context, id int64) error
}
