package domain

// Comic is a catalog entry identified externally by its Marvel id.
type Comic struct {
	ID          int64
	MarvelID    int64
	Title       string
	Description string
	Price       float64
	StockQty    int
	Picture     string
}
