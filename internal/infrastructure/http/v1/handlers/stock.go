package handlers

import (
	"github.com/gin-gonic/gin"

	"estoque/internal/domain/ledger"
	"estoque/internal/infrastructure/http/v1/dto"
)

// StockHandler handles stock mutations and the movement ledger.
type StockHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *ledger.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// AddStock handles POST /products/:id/stock/add
func (h *StockHandler) AddStock(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.StockOperationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.AddStock(c.Request.Context(), productID, req.Quantity, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// RemoveStock handles POST /products/:id/stock/remove
func (h *StockHandler) RemoveStock(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.StockOperationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.RemoveStock(c.Request.Context(), productID, req.Quantity, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// AdjustStock handles POST /products/:id/stock/adjust
// The quantity is the absolute target level, not a delta.
func (h *StockHandler) AdjustStock(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.StockOperationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.AdjustStock(c.Request.Context(), productID, req.Quantity, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// GetMovements handles GET /products/:id/movements
func (h *StockHandler) GetMovements(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	movements, err := h.service.GetMovements(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.MovementResponse, len(movements))
	for i, m := range movements {
		items[i] = dto.FromMovement(m)
	}

	h.OK(c, dto.MovementListResponse{Items: items, TotalCount: len(items)})
}

// RegisterRoutes registers stock routes on the products group.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/stock/add", h.AddStock)
	rg.POST("/:id/stock/remove", h.RemoveStock)
	rg.POST("/:id/stock/adjust", h.AdjustStock)
	rg.GET("/:id/movements", h.GetMovements)
}
