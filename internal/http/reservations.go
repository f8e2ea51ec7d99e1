package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

// ReservationsController exposes the reservation lifecycle under
// /api/book-reservations.
type ReservationsController struct {
	reservations *library.ReservationService
}

func NewReservationsController(reservations *library.ReservationService) *ReservationsController {
	return &ReservationsController{reservations: reservations}
}

func (rc *ReservationsController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", rc.List)
	rg.GET("/:id", rc.Get)
	rg.GET("/by-user/:userId", rc.ListByUser)
	rg.GET("/by-book/:bookId", rc.ListByBook)
	rg.POST("", rc.Create)
	rg.PUT("/:id", rc.Update)
	rg.PUT("/:id/return", rc.Return)
	rg.DELETE("/:id", rc.Delete)
}

// List handles GET /api/book-reservations
func (rc *ReservationsController) List(c *gin.Context) {
	reservations, err := rc.reservations.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list reservations")
		return
	}
	c.JSON(http.StatusOK, mapSlice(reservations, toReservationDTO))
}

// Get handles GET /api/book-reservations/:id
func (rc *ReservationsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.reservations.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get reservation")
		return
	}
	c.JSON(http.StatusOK, toReservationDTO(*reservation))
}

// ListByUser handles GET /api/book-reservations/by-user/:userId
func (rc *ReservationsController) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	reservations, err := rc.reservations.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "list reservations by user")
		return
	}
	c.JSON(http.StatusOK, mapSlice(reservations, toReservationDTO))
}

// ListByBook handles GET /api/book-reservations/by-book/:bookId
func (rc *ReservationsController) ListByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	reservations, err := rc.reservations.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err, "list reservations by book")
		return
	}
	c.JSON(http.StatusOK, mapSlice(reservations, toReservationDTO))
}

// Create handles POST /api/book-reservations
// An unknown book or user is a 404 and nothing is stored.
func (rc *ReservationsController) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondServiceError(c, err, "create reservation")
		return
	}
	reservation, err := rc.reservations.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create reservation")
		return
	}
	respondCreated(c, toReservationDTO(*reservation))
}

// Update handles PUT /api/book-reservations/:id
// Each supplied field overwrites the stored one; status changes that break
// the lifecycle are a 409.
func (rc *ReservationsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondServiceError(c, err, "update reservation")
		return
	}
	if err := rc.reservations.Update(c.Request.Context(), id, in); err != nil {
		respondServiceError(c, err, "update reservation")
		return
	}
	respondNoContent(c)
}

// Return handles PUT /api/book-reservations/:id/return
// Stamps the return date, marks the reservation Returned and charges the
// late fine. Returning twice is a 409.
func (rc *ReservationsController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := rc.reservations.Return(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "return book")
		return
	}
	respondNoContent(c)
}

// Delete handles DELETE /api/book-reservations/:id
func (rc *ReservationsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.reservations.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete reservation")
		return
	}
	respondNoContent(c)
}
