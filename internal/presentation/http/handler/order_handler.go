package handler

import (
	"github.com/ancarat/orderdesk/internal/application/service"
	"github.com/ancarat/orderdesk/internal/domain/enum"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/request"
	"github.com/ancarat/orderdesk/internal/presentation/http/dto/response"
	"github.com/ancarat/orderdesk/pkg/notify"
	"github.com/gin-gonic/gin"
)

// defaultBuyBackDiscount is the walk-in repurchase rate applied when the
// request does not carry one.
const defaultBuyBackDiscount = 0.5

// OrderHandler handles order submission HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	notifier     *notify.DiscordNotifier
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, notifier *notify.DiscordNotifier) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		notifier:     notifier,
	}
}

// SubmitSell handles a sell order submission
// @Summary Submit Sell Order
// @Description Record a sell order in today's ledger segment
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SubmitOrderRequest true "Order lines"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders/sell [post]
func (h *OrderHandler) SubmitSell(c *gin.Context) {
	h.submit(c, enum.FlowSell)
}

// SubmitBuyBack handles a buy-back order submission
// @Summary Submit Buy-Back Order
// @Description Record a repurchase order in today's ledger segment
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SubmitOrderRequest true "Order lines"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders/buyback [post]
func (h *OrderHandler) SubmitBuyBack(c *gin.Context) {
	h.submit(c, enum.FlowBuyBack)
}

func (h *OrderHandler) submit(c *gin.Context, flow enum.Flow) {
	var req request.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if flow == enum.FlowBuyBack && req.DiscountPercent == 0 {
		req.DiscountPercent = defaultBuyBackDiscount
	}

	summary, err := h.orderService.Submit(c.Request.Context(), &service.SubmitInput{
		Counterparty: req.Counterparty,
		Operator:     GetUserFullName(c),
		Flow:         flow,
		Lines:        req.ToLines(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// Best effort: the order is already appended, a chat outage changes nothing.
	h.notifier.OrderPlaced(c.Request.Context(), summary)

	response.Created(c, "Order recorded successfully", summary)
}
