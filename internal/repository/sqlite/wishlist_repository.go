package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
)

const createWishListsTable = `
CREATE TABLE IF NOT EXISTS wishlists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users (id),
	comic_id INTEGER NOT NULL REFERENCES comics (id),
	favorite INTEGER NOT NULL DEFAULT 0,
	cart INTEGER NOT NULL DEFAULT 0,
	wished_qty INTEGER NOT NULL DEFAULT 0
);
`

const wishListColumns = `id, user_id, comic_id, favorite, cart, wished_qty`

type WishListRepository struct {
	db *sql.DB
}

func NewWishListRepository(db *sql.DB) repository.WishListRepository {
	return &WishListRepository{db: db}
}

func (r *WishListRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createWishListsTable); err != nil {
		return fmt.Errorf("create wishlists table: %w", err)
	}
	return nil
}

func (r *WishListRepository) List(ctx context.Context) ([]domain.WishList, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+wishListColumns+` FROM wishlists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list wishlists: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishList, 0)
	for rows.Next() {
		var w domain.WishList
		if err := rows.Scan(&w.ID, &w.UserID, &w.ComicID, &w.Favorite, &w.Cart, &w.WishedQty); err != nil {
			return nil, fmt.Errorf("scan wishlist: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlists: %w", err)
	}
	return items, nil
}

func (r *WishListRepository) GetByID(ctx context.Context, id int64) (*domain.WishList, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+wishListColumns+` FROM wishlists WHERE id = ?`, id)
	var w domain.WishList
	if err := row.Scan(&w.ID, &w.UserID, &w.ComicID, &w.Favorite, &w.Cart, &w.WishedQty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan wishlist: %w", err)
	}
	return &w, nil
}

func (r *WishListRepository) Create(ctx context.Context, item *domain.WishList) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO wishlists (user_id, comic_id, favorite, cart, wished_qty)
VALUES (?, ?, ?, ?, ?)`,
		item.UserID,
		item.ComicID,
		item.Favorite,
		item.Cart,
		item.WishedQty,
	)
	if err != nil {
		return 0, fmt.Errorf("insert wishlist: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("wishlist last insert id: %w", err)
	}
	item.ID = id
	return id, nil
}

func (r *WishListRepository) Update(ctx context.Context, item *domain.WishList) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE wishlists
SET user_id = ?, comic_id = ?, favorite = ?, cart = ?, wished_qty = ?
WHERE id = ?`,
		item.UserID,
		item.ComicID,
		item.Favorite,
		item.Cart,
		item.WishedQty,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update wishlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("wishlist rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WishListRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("wishlist rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
