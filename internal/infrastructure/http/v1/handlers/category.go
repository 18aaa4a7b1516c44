package handlers

import (
	"github.com/gin-gonic/gin"

	"estoque/internal/domain/category"
	"estoque/internal/infrastructure/http/v1/dto"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		items[i] = dto.FromCategory(cat)
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created.ID.String())
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategory(cat))
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := category.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.service.Update(c.Request.Context(), categoryID, in); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "category updated")
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// GetStockHealth handles GET /categories/:id/stock-health
func (h *CategoryHandler) GetStockHealth(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	health, err := h.service.GetStockHealth(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromHealth(categoryID.String(), health))
}

// RegisterRoutes registers category routes.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/stock-health", h.GetStockHealth)
}
