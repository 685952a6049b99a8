package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository"
	"comic-catalog/internal/service"
)

type WishListResponse struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ComicID   int64 `json:"comic_id"`
	Favorite  bool  `json:"favorite"`
	Cart      bool  `json:"cart"`
	WishedQty int   `json:"wished_qty"`
}

func wishListToResponse(w domain.WishList) WishListResponse {
	return WishListResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		ComicID:   w.ComicID,
		Favorite:  w.Favorite,
		Cart:      w.Cart,
		WishedQty: w.WishedQty,
	}
}

type wishListCreateRequest struct {
	UserID    int64 `json:"user_id" binding:"required,gt=0"`
	ComicID   int64 `json:"comic_id" binding:"required,gt=0"`
	Favorite  bool  `json:"favorite"`
	Cart      bool  `json:"cart"`
	WishedQty int   `json:"wished_qty" binding:"omitempty,gte=0"`
}

type wishListUpdateRequest struct {
	UserID    *int64 `json:"user_id" binding:"omitempty,gt=0"`
	ComicID   *int64 `json:"comic_id" binding:"omitempty,gt=0"`
	Favorite  *bool  `json:"favorite"`
	Cart      *bool  `json:"cart"`
	WishedQty *int   `json:"wished_qty" binding:"omitempty,gte=0"`
}

// listWishLists serves GET /wish/list-create/ and GET /wishlist/:pk/.
func (h *Handler) listWishLists(c *gin.Context) {
	items, err := h.wishlists.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	resp := make([]WishListResponse, len(items))
	for i := range items {
		resp[i] = wishListToResponse(items[i])
	}
	c.JSON(http.StatusOK, resp)
}

// createWishList serves POST /wish/list-create/.
func (h *Handler) createWishList(c *gin.Context) {
	var req wishListCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	item := domain.WishList{
		UserID:    req.UserID,
		ComicID:   req.ComicID,
		Favorite:  req.Favorite,
		Cart:      req.Cart,
		WishedQty: req.WishedQty,
	}
	if err := h.wishlists.Create(c.Request.Context(), &item); err != nil {
		if !h.answerWishListRefError(c, err) {
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, wishListToResponse(item))
}

// updateWishList serves PUT/PATCH /wish/update/:pk/ (token + staff).
func (h *Handler) updateWishList(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	var req wishListUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.wishlists.Update(c.Request.Context(), id, service.WishListUpdate{
		UserID:    req.UserID,
		ComicID:   req.ComicID,
		Favorite:  req.Favorite,
		Cart:      req.Cart,
		WishedQty: req.WishedQty,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		if !h.answerWishListRefError(c, err) {
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, wishListToResponse(*item))
}

// deleteWishList serves DELETE /wish/delete/:pk/ (token + staff).
func (h *Handler) deleteWishList(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}
	if err := h.wishlists.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// answerWishListRefError maps dangling user/comic references to field errors.
// Reports whether it wrote a response.
func (h *Handler) answerWishListRefError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrWishListUserMissing):
		c.JSON(http.StatusBadRequest, gin.H{"user_id": "Invalid pk - object does not exist."})
	case errors.Is(err, service.ErrWishListComicMissing):
		c.JSON(http.StatusBadRequest, gin.H{"comic_id": "Invalid pk - object does not exist."})
	default:
		return false
	}
	return true
}
