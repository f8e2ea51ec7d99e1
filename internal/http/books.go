package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

type BooksController struct {
	catalog *library.CatalogService
}

func NewBooksController(catalog *library.CatalogService) *BooksController {
	return &BooksController{catalog: catalog}
}

func (bc *BooksController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", bc.List)
	rg.GET("/:id", bc.Get)
	rg.GET("/by-author/:authorId", bc.ListByAuthor)
	rg.GET("/by-category/:categoryId", bc.ListByCategory)
	rg.POST("", bc.Create)
	rg.PUT("/:id", bc.Update)
	rg.DELETE("/:id", bc.Delete)
}

// List handles GET /api/books
// Books carry their author, publisher and categories.
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.catalog.ListBooks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, mapSlice(books, toBookDTO))
}

// Get handles GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := bc.catalog.GetBook(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, toBookDTO(*book))
}

// ListByAuthor handles GET /api/books/by-author/:authorId
func (bc *BooksController) ListByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	books, err := bc.catalog.ListBooksByAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondServiceError(c, err, "list books by author")
		return
	}
	c.JSON(http.StatusOK, mapSlice(books, toBookDTO))
}

// ListByCategory handles GET /api/books/by-category/:categoryId
func (bc *BooksController) ListByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	books, err := bc.catalog.ListBooksByCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondServiceError(c, err, "list books by category")
		return
	}
	c.JSON(http.StatusOK, mapSlice(books, toBookDTO))
}

// Create handles POST /api/books
// Unknown category ids are ignored; an unknown author or publisher is a 404.
func (bc *BooksController) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	book, err := bc.catalog.CreateBook(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	respondCreated(c, toBookDTO(*book))
}

// Update handles PUT /api/books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	book, err := bc.catalog.GetBook(ctx, id)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	in, err := req.merge(book)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	if err := bc.catalog.UpdateBook(ctx, id, in); err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	respondNoContent(c)
}

// Delete handles DELETE /api/books/:id
// Responds 409 while reservations or reviews reference the book.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bc.catalog.DeleteBook(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete book")
		return
	}
	respondNoContent(c)
}
