package api

import (
	"net/http"

	reqdto "chatcart/internal/handler/dto/request"
	resdto "chatcart/internal/handler/dto/response"
	"chatcart/internal/handler/httperr"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/usecase/commands"
	"chatcart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminCommands commands.AdminCommands
	stockQueries  queries.StockQueries
}

func NewAdminHandler(adminCommands commands.AdminCommands, stockQueries queries.StockQueries) *AdminHandler {
	return &AdminHandler{
		adminCommands: adminCommands,
		stockQueries:  stockQueries,
	}
}

// @Summary Replenish stock
// @Description Add-only stock adjustment for a known SKU
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AdjustStockRequest true "Adjustment request"
// @Success 200 {object} resdto.StockLevelResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/stock/adjust [post]
func (h *AdminHandler) AdjustStock(c *gin.Context) {
	var req reqdto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual replenishment"
	}

	level, err := h.adminCommands.AdjustStock(c.Request.Context(), req.SKU, req.Qty, reason)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrUnknownSKU):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown SKU", nil)
		case errs.Is(err, errs.ErrNonPositiveQty):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Quantity must be positive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLevel(level))
}

// @Summary Reload catalog
// @Description Load a fresh product and offer snapshot from the configured source
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReloadCatalogResponse
// @Failure 502 {object} httperr.Response
// @Router /admin/catalog/reload [post]
func (h *AdminHandler) ReloadCatalog(c *gin.Context) {
	products, rules, err := h.adminCommands.ReloadCatalog(c.Request.Context())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrCatalogUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Catalog source unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.ReloadCatalogResponse{Products: products, Rules: rules})
}

// @Summary Stock levels
// @Description Current on-hand and reserved counts per SKU with low-stock flags
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StockLevelResponse
// @Router /admin/stock [get]
func (h *AdminHandler) StockLevels(c *gin.Context) {
	views, err := h.stockQueries.Levels(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	out := make([]resdto.StockLevelResponse, 0, len(views))
	for _, view := range views {
		out = append(out, resdto.FromStockView(view))
	}
	c.JSON(http.StatusOK, out)
}
