package handler

import (
	"net/http"

	"vendorpay/backend/internal/middleware"
	"vendorpay/backend/internal/service"
	"vendorpay/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports", middleware.RequireRole("admin", "manager", "accounts"))
	{
		reports.GET("", h.GenerateReports)
		reports.GET("/export", h.ExportReports)
	}
}

func reportQuery(c *gin.Context) service.ReportQuery {
	return service.ReportQuery{
		PeriodFrom: c.Query("period_from"),
		PeriodTo:   c.Query("period_to"),
		Currency:   c.Query("currency"),
		Supplier:   c.Query("supplier"),
		MinAmount:  c.Query("min_amount"),
	}
}

// GenerateReports handles GET /reports
// @Summary      Generate reports
// @Description  Builds the six dashboard report views from the current order snapshot. Filters scope every report except cancelled orders and the reconciliation log.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period_from  query     string  false  "Delivered-date lower bound (YYYY-MM-DD)"
// @Param        period_to    query     string  false  "Delivered-date upper bound (YYYY-MM-DD)"
// @Param        currency     query     string  false  "Currency filter"
// @Param        supplier     query     string  false  "Supplier name filter (case-insensitive)"
// @Param        min_amount   query     string  false  "Minimum total amount floor on supplier summary rows"
// @Success      200          {object}  response.Response{data=payout.Bundle}
// @Failure      400          {object}  response.Response
// @Router       /reports [get]
func (h *ReportHandler) GenerateReports(c *gin.Context) {
	bundle, err := h.reportService.GenerateReports(c.Request.Context(), reportQuery(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, bundle))
}

// ExportReports handles GET /reports/export — same filters as GET /reports,
// returned as an xlsx workbook.
// @Summary      Export reports as xlsx
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        period_from  query  string  false  "Delivered-date lower bound (YYYY-MM-DD)"
// @Param        period_to    query  string  false  "Delivered-date upper bound (YYYY-MM-DD)"
// @Param        currency     query  string  false  "Currency filter"
// @Param        supplier     query  string  false  "Supplier name filter"
// @Param        min_amount   query  string  false  "Minimum total amount floor"
// @Success      200  {file}  file
// @Failure      400  {object}  response.Response
// @Router       /reports/export [get]
func (h *ReportHandler) ExportReports(c *gin.Context) {
	data, name, err := h.reportService.ExportWorkbook(c.Request.Context(), reportQuery(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
