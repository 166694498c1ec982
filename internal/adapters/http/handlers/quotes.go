package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteflow/internal/app"
)

// QuoteHandler serves the upstream quote lists and random quotes.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// ListPrimary handles GET /api/quotes.
func (h *QuoteHandler) ListPrimary(c *gin.Context) {
	raw, err := h.service.PrimaryQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSourceQuotes(raw))
}

// ListSecondary handles GET /api/quotes/typefit.
func (h *QuoteHandler) ListSecondary(c *gin.Context) {
	raw, err := h.service.SecondaryQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSourceQuotes(raw))
}

// Random handles GET /api/quotes/random?category=. It never fails.
func (h *QuoteHandler) Random(c *gin.Context) {
	record := h.service.RandomQuote(c.Request.Context(), c.Query("category"))
	c.JSON(http.StatusOK, dto.NewQuoteRecordResponse(record))
}

// RegisterRoutes mounts the quote routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListPrimary)
	quotes.GET("/typefit", h.ListSecondary)
	quotes.GET("/random", h.Random)
}
