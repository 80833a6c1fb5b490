package handler

import (
	"net/http"
	"time"

	"vendorpay/backend/internal/middleware"
	"vendorpay/backend/internal/service"
	"vendorpay/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	payoutService service.PayoutService
}

func NewPayoutHandler(payoutService service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

func (h *PayoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	payouts := router.Group("/payouts", middleware.RequireRole("admin", "manager", "accounts"))
	{
		payouts.GET("/calculate", h.CalculatePayouts)
		payouts.GET("/notice", h.PreviewNotice)
	}
}

// CalculatePayouts handles GET /payouts/calculate
// @Summary      Calculate payouts
// @Description  Runs the payout calculation over all imported orders, returning per-order calculations, supplier/currency summaries, and deduplicated missing-price exceptions
// @Tags         payouts
// @Produce      json
// @Security     BearerAuth
// @Param        basis  query     string  false  "Pricing basis: delivered_date (default) or order_date"
// @Success      200    {object}  response.Response{data=payout.Result}
// @Failure      500    {object}  response.Response
// @Router       /payouts/calculate [get]
func (h *PayoutHandler) CalculatePayouts(c *gin.Context) {
	result, err := h.payoutService.CalculatePayouts(c.Request.Context(), c.Query("basis"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// PreviewNotice handles GET /payouts/notice — composes a payout notification
// email for one supplier over a period without sending it.
// @Summary      Preview payout notice
// @Tags         payouts
// @Produce      json
// @Security     BearerAuth
// @Param        supplier     query     string  true   "Supplier name"
// @Param        currency     query     string  false  "Currency (default INR)"
// @Param        basis        query     string  false  "Pricing basis"
// @Param        period_from  query     string  true   "Period start (YYYY-MM-DD)"
// @Param        period_to    query     string  true   "Period end (YYYY-MM-DD)"
// @Success      200          {object}  response.Response{data=object}
// @Failure      400          {object}  response.Response
// @Router       /payouts/notice [get]
func (h *PayoutHandler) PreviewNotice(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("period_from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid period_from date format (expected YYYY-MM-DD)"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("period_to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid period_to date format (expected YYYY-MM-DD)"))
		return
	}

	notice, err := h.payoutService.PreviewNotice(c.Request.Context(), c.Query("supplier"), c.Query("currency"), c.Query("basis"), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"notice":  notice,
		"subject": notice.Subject(),
		"body":    notice.Body(),
	}))
}
