package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

type CategoriesController struct {
	catalog *library.CatalogService
}

func NewCategoriesController(catalog *library.CatalogService) *CategoriesController {
	return &CategoriesController{catalog: catalog}
}

func (cc *CategoriesController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", cc.List)
	rg.GET("/:id", cc.Get)
	rg.POST("", cc.Create)
	rg.PUT("/:id", cc.Update)
	rg.DELETE("/:id", cc.Delete)
}

func (cc *CategoriesController) List(c *gin.Context) {
	categories, err := cc.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, mapSlice(categories, toCategoryDTO))
}

func (cc *CategoriesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := cc.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, toCategoryDTO(*category))
}

func (cc *CategoriesController) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	category, err := cc.catalog.CreateCategory(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}
	respondCreated(c, toCategoryDTO(*category))
}

func (cc *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	category, err := cc.catalog.GetCategory(ctx, id)
	if err != nil {
		respondServiceError(c, err, "update category")
		return
	}
	if err := cc.catalog.UpdateCategory(ctx, id, req.merge(category)); err != nil {
		respondServiceError(c, err, "update category")
		return
	}
	respondNoContent(c)
}

// Delete responds 409 while any book is filed under the category.
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete category")
		return
	}
	respondNoContent(c)
}
