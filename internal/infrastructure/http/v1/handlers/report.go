package handlers

import (
	"github.com/gin-gonic/gin"

	"estoque/internal/domain/report"
	"estoque/internal/infrastructure/http/v1/dto"
)

// ReportHandler handles read-only report endpoints.
type ReportHandler struct {
	*BaseHandler
	service *report.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *report.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetDashboard handles GET /reports/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	data, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDashboard(data))
}

// GetStockReport handles GET /reports/stock
func (h *ReportHandler) GetStockReport(c *gin.Context) {
	data, err := h.service.GetStockReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockReport(data))
}

// GetCategoryHealth handles GET /reports/category-health
func (h *ReportHandler) GetCategoryHealth(c *gin.Context) {
	rows, err := h.service.GetCategoryHealth(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategoryHealth(rows))
}

// RegisterRoutes registers report routes.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboard)
	rg.GET("/stock", h.GetStockReport)
	rg.GET("/category-health", h.GetCategoryHealth)
}
