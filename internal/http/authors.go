package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

type AuthorsController struct {
	catalog *library.CatalogService
}

func NewAuthorsController(catalog *library.CatalogService) *AuthorsController {
	return &AuthorsController{catalog: catalog}
}

func (ac *AuthorsController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", ac.List)
	rg.GET("/:id", ac.Get)
	rg.POST("", ac.Create)
	rg.PUT("/:id", ac.Update)
	rg.DELETE("/:id", ac.Delete)
}

// List handles GET /api/authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.catalog.ListAuthors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, mapSlice(authors, toAuthorDTO))
}

// Get handles GET /api/authors/:id
func (ac *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	author, err := ac.catalog.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, toAuthorDTO(*author))
}

// Create handles POST /api/authors
func (ac *AuthorsController) Create(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondServiceError(c, err, "create author")
		return
	}
	author, err := ac.catalog.CreateAuthor(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create author")
		return
	}
	respondCreated(c, toAuthorDTO(*author))
}

// Update handles PUT /api/authors/:id. Omitted fields keep their values.
func (ac *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	author, err := ac.catalog.GetAuthor(ctx, id)
	if err != nil {
		respondServiceError(c, err, "update author")
		return
	}
	in, err := req.merge(author)
	if err != nil {
		respondServiceError(c, err, "update author")
		return
	}
	if err := ac.catalog.UpdateAuthor(ctx, id, in); err != nil {
		respondServiceError(c, err, "update author")
		return
	}
	respondNoContent(c)
}

// Delete handles DELETE /api/authors/:id
// Responds 409 while the author still has books or reviews.
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.catalog.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete author")
		return
	}
	respondNoContent(c)
}
