package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteflow/internal/app"
)

// ShareHandler serves /api/share.
type ShareHandler struct {
	service *app.ShareService
}

// NewShareHandler creates a share handler.
func NewShareHandler(service *app.ShareService) *ShareHandler {
	return &ShareHandler{service: service}
}

// Share handles POST /api/share.
func (h *ShareHandler) Share(c *gin.Context) {
	var req dto.ShareRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	payload, err := h.service.Share(c.Request.Context(), req.Record(), req.Target, req.PageURL)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewShareResponse(payload))
}

// RegisterRoutes mounts the share route on rg.
func (h *ShareHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/share", h.Share)
}
