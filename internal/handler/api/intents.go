package api

import (
	"errors"
	"net/http"

	reqdto "chatcart/internal/handler/dto/request"
	resdto "chatcart/internal/handler/dto/response"
	"chatcart/internal/handler/httperr"
	"chatcart/internal/inventory"
	"chatcart/internal/pkg/errs"
	"chatcart/internal/usecase/commands"
	"chatcart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type IntentHandler struct {
	intentCommands commands.IntentCommands
	orderQueries   queries.OrderQueries
}

func NewIntentHandler(intentCommands commands.IntentCommands, orderQueries queries.OrderQueries) *IntentHandler {
	return &IntentHandler{
		intentCommands: intentCommands,
		orderQueries:   orderQueries,
	}
}

// @Summary Handle customer intent
// @Description Apply one structured intent (add_item, remove_item, change_qty, request_checkout, cancel) to the customer's order
// @Tags intents
// @Accept json
// @Produce json
// @Param request body reqdto.IntentRequest true "Structured intent record"
// @Success 200 {object} resdto.OrderSnapshotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /intents [post]
func (h *IntentHandler) Handle(c *gin.Context) {
	var req reqdto.IntentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.intentCommands.Handle(c.Request.Context(), req.CustomerID, req.ToDomain())
	if err != nil {
		h.renderIntentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapshot(result.Snapshot, result.Replayed))
}

func (h *IntentHandler) renderIntentError(c *gin.Context, err error) {
	var shortfall *inventory.InsufficientStockError

	switch {
	case errors.As(err, &shortfall):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", gin.H{
			"sku":       shortfall.SKU,
			"requested": shortfall.Requested,
			"available": shortfall.Available,
		})
	case errs.Is(err, errs.ErrEmptyCartCheckout):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty; add items before checkout", nil)
	case errs.Is(err, errs.ErrTerminalOrder):
		httperr.AbortWithError(c, http.StatusConflict, err, "Order is already finished; start a new one", nil)
	case errs.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Intent is not valid in the order's current state", nil)
	case errs.Is(err, errs.ErrNoActiveOrder), errs.Is(err, errs.ErrUnknownSession):
		httperr.AbortWithError(c, http.StatusNotFound, err, "No active order; add an item to start one", nil)
	case errs.Is(err, errs.ErrUnknownProduct), errs.Is(err, errs.ErrUnknownSKU):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown product", nil)
	case errs.Is(err, errs.ErrLineNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item is not in the cart", nil)
	case errs.Is(err, errs.ErrIdempotencyKeyRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency key required", nil)
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid intent", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary Get active order
// @Description Current cart snapshot for a customer
// @Tags orders
// @Produce json
// @Param customerId path string true "Customer identifier"
// @Success 200 {object} resdto.OrderSnapshotResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{customerId} [get]
func (h *IntentHandler) GetActiveOrder(c *gin.Context) {
	customerID := c.Param("customerId")

	snap, err := h.orderQueries.GetActive(c.Request.Context(), customerID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrUnknownSession), errs.Is(err, errs.ErrNoActiveOrder):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No active order for customer", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSnapshot(*snap, false))
}
