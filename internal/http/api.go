package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"comic-catalog/internal/cache"
	"comic-catalog/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	catalog   service.CatalogService
	users     service.UserService
	wishlists service.WishListService
	cache     *cache.Client
	logger    *logrus.Logger
}

func NewHandler(catalog service.CatalogService, users service.UserService, wishlists service.WishListService, cacheClient *cache.Client, logger *logrus.Logger) *Handler {
	return &Handler{
		catalog:   catalog,
		users:     users,
		wishlists: wishlists,
		cache:     cacheClient,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	registerTagNames()

	router.Use(corsMiddleware())
	if h.logger != nil {
		router.Use(requestLogger(h.logger))
	}

	// function-style comic endpoints (raw field dumps, Spanish validation texts)
	router.GET("/comic-list/", h.listComicsRaw)
	router.GET("/comic-retrieve/", h.retrieveComicByQuery)
	router.POST("/comic-create/", h.createComicRaw)

	comics := router.Group("/comics")
	{
		comics.GET("/list/", h.listComics)
		comics.GET("/:pk/", h.getComic)
		comics.GET("/comic/:marvel_id/", h.getComicByMarvelID)
		comics.POST("/create/", h.createComic)
		comics.GET("/list-create/", h.listComicsByMarvelID)
		comics.POST("/list-create/", h.createComic)
		comics.PUT("/update/:marvel_id/", h.updateComicByMarvelID)
		comics.PATCH("/update/:marvel_id/", h.updateComicByMarvelID)
		comics.GET("/retrieve-update/:pk/", h.getComic)
		comics.PUT("/retrieve-update/:pk/", h.updateComic)
		comics.PATCH("/retrieve-update/:pk/", h.updateComic)
		comics.DELETE("/delete/:pk/", h.deleteComic)
	}

	users := router.Group("/users")
	{
		users.GET("/list/", h.listUsers)
		users.GET("/:username/", h.getUser)
	}

	wish := router.Group("/wish")
	{
		wish.GET("/list-create/", h.listWishLists)
		wish.POST("/list-create/", h.createWishList)

		staff := wish.Group("", h.tokenAuth(), staffOnly())
		staff.PUT("/update/:pk/", h.updateWishList)
		staff.PATCH("/update/:pk/", h.updateWishList)
		staff.DELETE("/delete/:pk/", h.deleteWishList)
	}

	// open listing; the pk segment is accepted but not used for filtering
	router.GET("/wishlist/:pk/", h.listWishLists)

	router.POST("/login/", h.login)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
