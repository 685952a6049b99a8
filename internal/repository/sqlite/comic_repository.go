package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

const createComicsTable = `
CREATE TABLE IF NOT EXISTS comics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	marvel_id INTEGER NOT NULL UNIQUE,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	stock_qty INTEGER NOT NULL DEFAULT 0,
	picture TEXT NOT NULL DEFAULT ''
);
`

const comicColumns = `id, marvel_id, title, description, price, stock_qty, picture`

type ComicRepository struct {
	db *sql.DB
}

func NewComicRepository(db *sql.DB) repository.ComicRepository {
	return &ComicRepository{db: db}
}

func (r *ComicRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createComicsTable); err != nil {
		return fmt.Errorf("create comics table: %w", err)
	}
	return nil
}

func (r *ComicRepository) List(ctx context.Context) ([]domain.Comic, error) {
	return r.list(ctx, `SELECT `+comicColumns+` FROM comics ORDER BY id`)
}

func (r *ComicRepository) ListByMarvelID(ctx context.Context) ([]domain.Comic, error) {
	return r.list(ctx, `SELECT `+comicColumns+` FROM comics ORDER BY marvel_id`)
}

func (r *ComicRepository) list(ctx context.Context, query string) ([]domain.Comic, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list comics: %w", err)
	}
	defer rows.Close()

	comics := make([]domain.Comic, 0)
	for rows.Next() {
		var c domain.Comic
		if err := rows.Scan(&c.ID, &c.MarvelID, &c.Title, &c.Description, &c.Price, &c.StockQty, &c.Picture); err != nil {
			return nil, fmt.Errorf("scan comic: %w", err)
		}
		comics = append(comics, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comics: %w", err)
	}
	return comics, nil
}

func (r *ComicRepository) GetByID(ctx context.Context, id int64) (*domain.Comic, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+comicColumns+` FROM comics WHERE id = ?`, id)
	return scanComic(row)
}

func (r *ComicRepository) GetByMarvelID(ctx context.Context, marvelID int64) (*domain.Comic, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+comicColumns+` FROM comics WHERE marvel_id = ?`, marvelID)
	return scanComic(row)
}

// GetOrCreate relies on the marvel_id unique index to arbitrate concurrent
// inserts: the insert is a no-op on conflict and the losing writer reads the
// winner's row.
func (r *ComicRepository) GetOrCreate(ctx context.Context, comic *domain.Comic) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO comics (marvel_id, title, description, price, stock_qty, picture)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (marvel_id) DO NOTHING`,
		comic.MarvelID,
		comic.Title,
		comic.Description,
		comic.Price,
		comic.StockQty,
		comic.Picture,
	)
	if err != nil {
		return false, fmt.Errorf("insert comic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("comic rows affected: %w", err)
	}
	if n == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("comic last insert id: %w", err)
		}
		comic.ID = id
		return true, nil
	}

	existing, err := r.GetByMarvelID(ctx, comic.MarvelID)
	if err != nil {
		return false, err
	}
	*comic = *existing
	return false, nil
}

func (r *ComicRepository) Update(ctx context.Context, comic *domain.Comic) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE comics
SET marvel_id = ?, title = ?, description = ?, price = ?, stock_qty = ?, picture = ?
WHERE id = ?`,
		comic.MarvelID,
		comic.Title,
		comic.Description,
		comic.Price,
		comic.StockQty,
		comic.Picture,
		comic.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update comic: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("update comic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("comic rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ComicRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("comic rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanComic(row *sql.Row) (*domain.Comic, error) {
	var c domain.Comic
	if err := row.Scan(&c.ID, &c.MarvelID, &c.Title, &c.Description, &c.Price, &c.StockQty, &c.Picture); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan comic: %w", err)
	}
	return &c, nil
}
