package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

type ReviewsController struct {
	reviews *library.ReviewService
}

func NewReviewsController(reviews *library.ReviewService) *ReviewsController {
	return &ReviewsController{reviews: reviews}
}

func (rc *ReviewsController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", rc.List)
	rg.GET("/:id", rc.Get)
	rg.GET("/by-author/:authorId", rc.ListByAuthor)
	rg.POST("", rc.Create)
	rg.PUT("/:id", rc.Update)
	rg.DELETE("/:id", rc.Delete)
}

func (rc *ReviewsController) List(c *gin.Context) {
	reviews, err := rc.reviews.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, mapSlice(reviews, toReviewDTO))
}

func (rc *ReviewsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	review, err := rc.reviews.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get review")
		return
	}
	c.JSON(http.StatusOK, toReviewDTO(*review))
}

// ListByAuthor handles GET /api/reviews/by-author/:authorId, newest first.
func (rc *ReviewsController) ListByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	reviews, err := rc.reviews.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondServiceError(c, err, "list reviews by author")
		return
	}
	c.JSON(http.StatusOK, mapSlice(reviews, toReviewDTO))
}

func (rc *ReviewsController) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	review, err := rc.reviews.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "create review")
		return
	}
	respondCreated(c, toReviewDTO(*review))
}

// Update handles PUT /api/reviews/:id. Only rating and comment change.
func (rc *ReviewsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	review, err := rc.reviews.Get(ctx, id)
	if err != nil {
		respondServiceError(c, err, "update review")
		return
	}
	if err := rc.reviews.Update(ctx, id, req.merge(review)); err != nil {
		respondServiceError(c, err, "update review")
		return
	}
	respondNoContent(c)
}

func (rc *ReviewsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.reviews.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete review")
		return
	}
	respondNoContent(c)
}
