package domain

// WishList links a user to a comic they want, with cart/favorite flags.
type WishList struct {
	ID        int64
	UserID    int64
	ComicID   int64
	Favorite  bool
	Cart      bool
	WishedQty int
}
