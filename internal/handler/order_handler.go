package handler

import (
	"encoding/json"
	"net/http"

	"vendorpay/backend/internal/middleware"
	"vendorpay/backend/internal/service"
	"vendorpay/backend/pkg/pagination"
	"vendorpay/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService  service.OrderService
	importService service.ImportService
	reconService  service.ReconciliationService
}

func NewOrderHandler(orderService service.OrderService, importService service.ImportService, reconService service.ReconciliationService) *OrderHandler {
	return &OrderHandler{orderService: orderService, importService: importService, reconService: reconService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", middleware.RequireRole("admin", "manager", "accounts"))
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrderByID)
		orders.POST("/import", h.ImportOrders)
		orders.PATCH("/:id/status", h.ChangeOrderStatus)
		orders.GET("/:id/reconciliation", h.GetOrderReconciliationLog)
	}

	router.GET("/reconciliation", middleware.RequireRole("admin", "manager", "accounts"), h.GetReconciliationLog)
}

// ImportOrders handles POST /orders/import — multipart upload of a courier
// export CSV plus a JSON column mapping.
// @Summary      Import orders
// @Description  Uploads a CSV export for one supplier. The mapping form field is a JSON object mapping logical fields (awb, supplier, product_name, quantity, currency, status, courier, channel_order_date, order_date, delivered_date, rts_date, unit_price, line_amount, hsn) to CSV column headers.
// @Tags         orders
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true  "CSV export file"
// @Param        supplier_id  formData  string  true  "Supplier UUID"
// @Param        mapping      formData  string  true  "JSON column mapping"
// @Success      201          {object}  response.Response{data=service.ImportSummary}
// @Failure      400          {object}  response.Response
// @Router       /orders/import [post]
func (h *OrderHandler) ImportOrders(c *gin.Context) {
	supplierID := c.PostForm("supplier_id")
	if supplierID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "supplier_id is required"))
		return
	}

	var mapping service.ColumnMapping
	if raw := c.PostForm("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid column mapping JSON: "+err.Error()))
			return
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	summary, err := h.importService.ImportOrders(c.Request.Context(), supplierID, mapping, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, summary))
}

// ListOrders handles GET /orders with status/search filters
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by canonical status"
// @Param        search  query     string  false  "Search by AWB or product name"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Success      200     {object}  response.Response{data=object}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	p := pagination.Parse(c)

	orders, total, err := h.orderService.GetOrders(c.Request.Context(), c.Query("status"), c.Query("search"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	}))
}

// GetOrderByID handles GET /orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ChangeOrderStatus handles PATCH /orders/:id/status — the reconciliation
// entry point for post-import status corrections.
// @Summary      Change order status
// @Description  Applies a status correction to an order and appends the payout impact to the reconciliation log
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Order ID"
// @Param        payload  body      service.ChangeStatusRequest   true  "New status and optional note"
// @Success      200      {object}  response.Response{data=service.ReconciliationEntryResponse}
// @Failure      400      {object}  response.Response
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) ChangeOrderStatus(c *gin.Context) {
	var req service.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.reconService.ChangeOrderStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// GetOrderReconciliationLog handles GET /orders/:id/reconciliation
func (h *OrderHandler) GetOrderReconciliationLog(c *gin.Context) {
	entries, err := h.reconService.GetOrderLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// GetReconciliationLog handles GET /reconciliation
func (h *OrderHandler) GetReconciliationLog(c *gin.Context) {
	p := pagination.Parse(c)

	entries, total, err := h.reconService.GetLog(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch reconciliation log"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
		"page":    p.Page,
		"limit":   p.Limit,
	}))
}
