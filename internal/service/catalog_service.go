package service

import (
	"context"
	"errors"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

var (
	// ErrMarvelIDRequired indicates a comic payload without a marvel id.
	ErrMarvelIDRequired = errors.New("marvel_id is required")
	// ErrComicExists is returned when a comic with the same marvel id is
	// already stored.
	ErrComicExists = errors.New("comic already exists")
)

// ComicUpdate carries the fields supplied in a partial update. Nil fields
// are left untouched.
type ComicUpdate struct {
	MarvelID    *int64
	Title       *string
	Description *string
	Price       *float64
	StockQty    *int
	Picture     *string
}

// CatalogService describes comic catalog operations.
type CatalogService interface {
	ListComics(ctx context.Context) ([]domain.Comic, error)
	ListComicsByMarvelID(ctx context.Context) ([]domain.Comic, error)
	GetComic(ctx context.Context, id int64) (*domain.Comic, error)
	GetComicByMarvelID(ctx context.Context, marvelID int64) (*domain.Comic, error)
	// CreateComic persists a new comic; ErrComicExists if the marvel id is taken.
	CreateComic(ctx context.Context, comic *domain.Comic) error
	// GetOrCreateComic inserts the comic or loads the existing row with the
	// same marvel id, reporting which happened.
	GetOrCreateComic(ctx context.Context, comic *domain.Comic) (created bool, err error)
	UpdateComic(ctx context.Context, id int64, upd ComicUpdate) (*domain.Comic, error)
	UpdateComicByMarvelID(ctx context.Context, marvelID int64, upd ComicUpdate) (*domain.Comic, error)
	DeleteComic(ctx context.Context, id int64) error
}

type catalogService struct {
	comics repository.ComicRepository
}

func NewCatalogService(comics repository.ComicRepository) CatalogService {
	return &catalogService{comics: comics}
}

func (s *catalogService) ListComics(ctx context.Context) ([]domain.Comic, error) {
	return s.comics.List(ctx)
}

func (s *catalogService) ListComicsByMarvelID(ctx context.Context) ([]domain.Comic, error) {
	return s.comics.ListByMarvelID(ctx)
}

func (s *catalogService) GetComic(ctx context.Context, id int64) (*domain.Comic, error) {
	return s.comics.GetByID(ctx, id)
}

func (s *catalogService) GetComicByMarvelID(ctx context.Context, marvelID int64) (*domain.Comic, error) {
	return s.comics.GetByMarvelID(ctx, marvelID)
}

func (s *catalogService) CreateComic(ctx context.Context, comic *domain.Comic) error {
	created, err := s.GetOrCreateComic(ctx, comic)
	if err != nil {
		return err
	}
	if !created {
		return ErrComicExists
	}
	return nil
}

func (s *catalogService) GetOrCreateComic(ctx context.Context, comic *domain.Comic) (bool, error) {
	if comic.MarvelID <= 0 {
		return false, ErrMarvelIDRequired
	}
	return s.comics.GetOrCreate(ctx, comic)
}

func (s *catalogService) UpdateComic(ctx context.Context, id int64, upd ComicUpdate) (*domain.Comic, error) {
	comic, err := s.comics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, comic, upd)
}

func (s *catalogService) UpdateComicByMarvelID(ctx context.Context, marvelID int64, upd ComicUpdate) (*domain.Comic, error) {
	comic, err := s.comics.GetByMarvelID(ctx, marvelID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, comic, upd)
}

func (s *catalogService) applyUpdate(ctx context.Context, comic *domain.Comic, upd ComicUpdate) (*domain.Comic, error) {
	if upd.MarvelID != nil {
		comic.MarvelID = *upd.MarvelID
	}
	if upd.Title != nil {
		comic.Title = *upd.Title
	}
	if upd.Description != nil {
		comic.Description = *upd.Description
	}
	if upd.Price != nil {
		comic.Price = *upd.Price
	}
	if upd.StockQty != nil {
		comic.StockQty = *upd.StockQty
	}
	if upd.Picture != nil {
		comic.Picture = *upd.Picture
	}
	if err := s.comics.Update(ctx, comic); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrComicExists
		}
		return nil, err
	}
	return comic, nil
}

func (s *catalogService) DeleteComic(ctx context.Context, id int64) error {
	return s.comics.Delete(ctx, id)
}
