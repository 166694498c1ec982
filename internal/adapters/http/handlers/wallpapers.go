package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteflow/internal/app"
)

// WallpaperHandler serves /api/wallpapers.
type WallpaperHandler struct {
	service *app.WallpaperService
}

// NewWallpaperHandler creates a wallpaper handler.
func NewWallpaperHandler(service *app.WallpaperService) *WallpaperHandler {
	return &WallpaperHandler{service: service}
}

// Create handles POST /api/wallpapers and streams the PNG as an
// attachment.
func (h *WallpaperHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	w, err := h.service.Create(c.Request.Context(), req.Record())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", w.Filename))
	c.Data(http.StatusOK, w.ContentType, w.Data)
}

// RegisterRoutes mounts the wallpaper routes on rg.
func (h *WallpaperHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/wallpapers", h.Create)
}
