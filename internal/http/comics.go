package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
	"comic-catalog/internal/service"
)

const (
	comicListCacheKey       = "comics:list"
	comicListMarvelCacheKey = "comics:list:marvel"
	comicCacheTTL           = 60 * time.Second
)

type ComicResponse struct {
	ID          int64   `json:"id"`
	MarvelID    int64   `json:"marvel_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	StockQty    int     `json:"stock_qty"`
	Picture     string  `json:"picture"`
}

func comicToResponse(c domain.Comic) ComicResponse {
	return ComicResponse{
		ID:          c.ID,
		MarvelID:    c.MarvelID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		StockQty:    c.StockQty,
		Picture:     c.Picture,
	}
}

func comicsToResponse(comics []domain.Comic) []ComicResponse {
	resp := make([]ComicResponse, len(comics))
	for i := range comics {
		resp[i] = comicToResponse(comics[i])
	}
	return resp
}

type comicCreateRequest struct {
	MarvelID    int64   `json:"marvel_id" binding:"required,gt=0"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"omitempty,gte=0"`
	StockQty    int     `json:"stock_qty" binding:"omitempty,gte=0"`
	Picture     string  `json:"picture"`
}

type comicUpdateRequest struct {
	MarvelID    *int64   `json:"marvel_id" binding:"omitempty,gt=0"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	StockQty    *int     `json:"stock_qty" binding:"omitempty,gte=0"`
	Picture     *string  `json:"picture"`
}

func (r comicUpdateRequest) toUpdate() service.ComicUpdate {
	return service.ComicUpdate{
		MarvelID:    r.MarvelID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		StockQty:    r.StockQty,
		Picture:     r.Picture,
	}
}

// listComicsRaw serves GET /comic-list/.
func (h *Handler) listComicsRaw(c *gin.Context) {
	comics, err := h.catalog.ListComics(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, comicsToResponse(comics))
}

// retrieveComicByQuery serves GET /comic-retrieve/?id=<id>. A missing or
// non-numeric id matches nothing, same as a lookup miss.
func (h *Handler) retrieveComicByQuery(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	comic, err := h.catalog.GetComic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, comicToResponse(*comic))
}

// createComicRaw serves POST /comic-create/ with get-or-create semantics:
// a duplicate marvel_id answers 400 and leaves the stored row untouched.
func (h *Handler) createComicRaw(c *gin.Context) {
	var req struct {
		MarvelID    *int64  `json:"marvel_id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		StockQty    int     `json:"stock_qty"`
		Picture     string  `json:"picture"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MarvelID == nil || *req.MarvelID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"marvel_id": "Este campo no puede ser nulo."})
		return
	}

	comic := domain.Comic{
		MarvelID:    *req.MarvelID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		StockQty:    req.StockQty,
		Picture:     req.Picture,
	}
	created, err := h.catalog.GetOrCreateComic(c.Request.Context(), &comic)
	if err != nil {
		internalError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusBadRequest, gin.H{"marvel_id": "Ya existe un comic con ese valor, debe ser único."})
		return
	}

	h.invalidateComicCache(c.Request.Context())
	c.JSON(http.StatusCreated, comicToResponse(comic))
}

// listComics serves GET /comics/list/.
func (h *Handler) listComics(c *gin.Context) {
	h.serveComicList(c, comicListCacheKey, h.catalog.ListComics)
}

// listComicsByMarvelID serves GET /comics/list-create/, ordered by marvel_id.
func (h *Handler) listComicsByMarvelID(c *gin.Context) {
	h.serveComicList(c, comicListMarvelCacheKey, h.catalog.ListComicsByMarvelID)
}

func (h *Handler) serveComicList(c *gin.Context, cacheKey string, load func(context.Context) ([]domain.Comic, error)) {
	ctx := c.Request.Context()

	var cached []ComicResponse
	if found, err := h.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	comics, err := load(ctx)
	if err != nil {
		internalError(c, err)
		return
	}
	resp := comicsToResponse(comics)
	_ = h.cache.Set(ctx, cacheKey, resp, comicCacheTTL)
	c.JSON(http.StatusOK, resp)
}

// getComic serves GET /comics/:pk/ and the GET side of retrieve-update.
func (h *Handler) getComic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	comic, err := h.catalog.GetComic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, comicToResponse(*comic))
}

// getComicByMarvelID serves GET /comics/comic/:marvel_id/.
func (h *Handler) getComicByMarvelID(c *gin.Context) {
	marvelID, err := strconv.ParseInt(c.Param("marvel_id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	comic, err := h.catalog.GetComicByMarvelID(c.Request.Context(), marvelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, comicToResponse(*comic))
}

// createComic serves POST /comics/create/ and POST /comics/list-create/.
func (h *Handler) createComic(c *gin.Context) {
	var req comicCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	comic := domain.Comic{
		MarvelID:    req.MarvelID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		StockQty:    req.StockQty,
		Picture:     req.Picture,
	}
	if err := h.catalog.CreateComic(c.Request.Context(), &comic); err != nil {
		if errors.Is(err, service.ErrComicExists) {
			c.JSON(http.StatusBadRequest, gin.H{"marvel_id": "comic with this marvel_id already exists."})
			return
		}
		internalError(c, err)
		return
	}

	h.invalidateComicCache(c.Request.Context())
	c.JSON(http.StatusCreated, comicToResponse(comic))
}

// updateComic serves PUT/PATCH /comics/retrieve-update/:pk/ (partial).
func (h *Handler) updateComic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	h.applyComicUpdate(c, func(ctx context.Context, upd service.ComicUpdate) (*domain.Comic, error) {
		return h.catalog.UpdateComic(ctx, id, upd)
	})
}

// updateComicByMarvelID serves PUT/PATCH /comics/update/:marvel_id/ (partial).
func (h *Handler) updateComicByMarvelID(c *gin.Context) {
	marvelID, err := strconv.ParseInt(c.Param("marvel_id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	h.applyComicUpdate(c, func(ctx context.Context, upd service.ComicUpdate) (*domain.Comic, error) {
		return h.catalog.UpdateComicByMarvelID(ctx, marvelID, upd)
	})
}

func (h *Handler) applyComicUpdate(c *gin.Context, apply func(context.Context, service.ComicUpdate) (*domain.Comic, error)) {
	var req comicUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	comic, err := apply(c.Request.Context(), req.toUpdate())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			notFound(c)
		case errors.Is(err, service.ErrComicExists):
			c.JSON(http.StatusBadRequest, gin.H{"marvel_id": "comic with this marvel_id already exists."})
		default:
			internalError(c, err)
		}
		return
	}

	h.invalidateComicCache(c.Request.Context())
	c.JSON(http.StatusOK, comicToResponse(*comic))
}

// deleteComic serves DELETE /comics/delete/:pk/. Deleting a missing row is a
// 404, not a no-op.
func (h *Handler) deleteComic(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	if err := h.catalog.DeleteComic(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}

	h.invalidateComicCache(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *Handler) invalidateComicCache(ctx context.Context) {
	_ = h.cache.Delete(ctx, comicListCacheKey, comicListMarvelCacheKey)
}
