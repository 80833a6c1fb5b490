package handler

import (
	"net/http"

	"vendorpay/backend/internal/middleware"
	"vendorpay/backend/internal/service"
	"vendorpay/backend/pkg/pagination"
	"vendorpay/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	priceService service.PriceService
}

func NewPriceHandler(priceService service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

func (h *PriceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prices := router.Group("/prices")
	{
		prices.GET("", middleware.RequireRole("admin", "manager", "accounts"), h.ListPriceEntries)
		prices.POST("", middleware.RequireRole("admin", "manager"), h.CreatePriceEntry)
		prices.PUT("/:id", middleware.RequireRole("admin", "manager"), h.UpdatePriceEntry)
		prices.DELETE("/:id", middleware.RequireRole("admin"), h.DeletePriceEntry)
	}
}

// ListPriceEntries handles GET /prices with optional supplier filter
// @Summary      List price entries
// @Tags         prices
// @Produce      json
// @Security     BearerAuth
// @Param        supplier_id  query     string  false  "Filter by supplier UUID"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Items per page"
// @Success      200          {object}  response.Response{data=object}
// @Router       /prices [get]
func (h *PriceHandler) ListPriceEntries(c *gin.Context) {
	p := pagination.Parse(c)

	entries, total, err := h.priceService.GetPriceEntries(c.Request.Context(), c.Query("supplier_id"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"prices": entries,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	}))
}

// CreatePriceEntry handles POST /prices
// @Summary      Create price entry
// @Description  Adds a price entry with an effective-date validity window. Overlapping windows for the same product are accepted.
// @Tags         prices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreatePriceEntryRequest  true  "Create Price Entry Payload"
// @Success      201      {object}  response.Response{data=service.PriceEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /prices [post]
func (h *PriceHandler) CreatePriceEntry(c *gin.Context) {
	var req service.CreatePriceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.priceService.CreatePriceEntry(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// UpdatePriceEntry handles PUT /prices/:id
func (h *PriceHandler) UpdatePriceEntry(c *gin.Context) {
	var req service.UpdatePriceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	entry, err := h.priceService.UpdatePriceEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeletePriceEntry handles DELETE /prices/:id
func (h *PriceHandler) DeletePriceEntry(c *gin.Context) {
	if err := h.priceService.DeletePriceEntry(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Price entry deleted successfully"))
}
