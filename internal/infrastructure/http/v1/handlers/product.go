package handlers

import (
	"github.com/gin-gonic/gin"

	"estoque/internal/core/apperror"
	"estoque/internal/core/id"
	"estoque/internal/domain/product"
	"estoque/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /products
// Optional filters: ?categoryId=<uuid> and ?lowStock=true.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []*product.Product
		err      error
	)

	switch {
	case c.Query("lowStock") == "true":
		products, err = h.service.GetLowStock(ctx)
	case c.Query("categoryId") != "":
		categoryID, parseErr := id.Parse(c.Query("categoryId"))
		if parseErr != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId format"))
			return
		}
		products, err = h.service.GetByCategory(ctx, categoryID)
	default:
		products, err = h.service.GetAll(ctx)
	}

	if err != nil {
		h.Error(c, err)
		return
	}

	items := dto.FromProducts(products)
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToCreateInput()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid categoryId format"))
		return
	}

	created, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created.ID.String())
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := product.UpdateInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		MinStock:      req.MinStock,
		ClearCategory: req.ClearCategory,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		parsed, err := id.Parse(*req.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId format"))
			return
		}
		in.CategoryID = &parsed
	}

	if err := h.service.Update(c.Request.Context(), productID, in); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "product updated")
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
