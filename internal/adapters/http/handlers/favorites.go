package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteflow/internal/app"
)

// FavoritesHandler serves /api/favorites.
type FavoritesHandler struct {
	service *app.FavoritesService
}

// NewFavoritesHandler creates a favorites handler.
func NewFavoritesHandler(service *app.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{service: service}
}

// List handles GET /api/favorites.
func (h *FavoritesHandler) List(c *gin.Context) {
	quotes, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFavoriteResponses(quotes))
}

// Get handles GET /api/favorites/:id.
func (h *FavoritesHandler) Get(c *gin.Context) {
	id, ok := favoriteID(c)
	if !ok {
		return
	}

	q, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFavoriteResponse(q))
}

// Add handles POST /api/favorites.
func (h *FavoritesHandler) Add(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	q, err := h.service.Add(c.Request.Context(), req.Record())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewFavoriteResponse(q))
}

// Remove handles DELETE /api/favorites/:id. Unknown ids succeed.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	id, ok := favoriteID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func favoriteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, "Invalid quote ID")
		return 0, false
	}

	return id, true
}

// RegisterRoutes mounts the favorites routes on rg.
func (h *FavoritesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	favorites.GET("", h.List)
	favorites.GET("/:id", h.Get)
	favorites.POST("", h.Add)
	favorites.DELETE("/:id", h.Remove)
}
