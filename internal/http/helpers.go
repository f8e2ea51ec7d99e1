package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeNotFound         = "not_found"
	codeConflict         = "conflict"
	codeValidationFailed = "validation_failed"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: codeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondServiceError maps an error returned by the library services to a
// response: missing records are 404, blocked deletes and illegal status
// changes are 409, rejected input is 400. Anything else is logged and
// reported as a bare 500.
func respondServiceError(c *gin.Context, err error, context string) {
	var conflict *integrity.ConflictError
	switch {
	case errors.Is(err, library.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: codeNotFound})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   conflict.Message,
			Code:    codeConflict,
			Details: gin.H{"entity": conflict.Entity, "relation": conflict.Relation, "count": conflict.Count},
		})
	case errors.Is(err, library.ErrConflict),
		errors.Is(err, library.ErrInvalidTransition),
		errors.Is(err, library.ErrAlreadyReturned):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: codeConflict})
	case errors.Is(err, library.ErrInvalidStatus),
		errors.Is(err, library.ErrInvalidDate),
		errors.Is(err, library.ErrInvalidRating),
		errors.Is(err, library.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeValidationFailed})
	default:
		respondInternalError(c, err, context)
	}
}

// respondBindingError reports a request body that failed to decode or
// validate. Validation failures list the offending fields and the rule each
// one broke.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    codeValidationFailed,
			Details: fields,
		})
		return
	}
	respondBadRequest(c, "invalid request body")
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondNoContent sends a 204 No Content response.
func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryInt reads an optional positive integer query parameter, falling
// back to def when it is absent. Values above max are clamped.
func parseQueryInt(c *gin.Context, name string, def, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	if n > max {
		n = max
	}
	return n, true
}
