package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteflow/internal/app"
	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// StatsHandler serves /api/stats.
type StatsHandler struct {
	service *app.StatsService
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(service *app.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.service.Get(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// Patch handles PATCH /api/stats with absolute values.
func (h *StatsHandler) Patch(c *gin.Context) {
	var req dto.StatsPatchRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	stats, err := h.service.Merge(c.Request.Context(), req.Patch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// Increment handles POST /api/stats/increment.
func (h *StatsHandler) Increment(c *gin.Context) {
	var req dto.IncrementRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	stats, err := h.service.Increment(c.Request.Context(), domain.Counter(req.Counter), req.Amount())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// RegisterRoutes mounts the stats routes on rg.
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/stats")
	stats.GET("", h.Get)
	stats.PATCH("", h.Patch)
	stats.POST("/increment", h.Increment)
}
