package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

type UsersController struct {
	users *library.UserService
}

func NewUsersController(users *library.UserService) *UsersController {
	return &UsersController{users: users}
}

func (uc *UsersController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", uc.List)
	rg.GET("/:id", uc.Get)
	rg.POST("", uc.Create)
	rg.PUT("/:id", uc.Update)
	rg.DELETE("/:id", uc.Delete)
}

func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, mapSlice(users, toUserDTO))
}

func (uc *UsersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.users.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, toUserDTO(*user))
}

// Create handles POST /api/users. The join date is the time of the request.
func (uc *UsersController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	user, err := uc.users.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "create user")
		return
	}
	respondCreated(c, toUserDTO(*user))
}

func (uc *UsersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := uc.users.Get(ctx, id)
	if err != nil {
		respondServiceError(c, err, "update user")
		return
	}
	if err := uc.users.Update(ctx, id, req.merge(user)); err != nil {
		respondServiceError(c, err, "update user")
		return
	}
	respondNoContent(c)
}

// Delete responds 409 while the user has reservations.
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := uc.users.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete user")
		return
	}
	respondNoContent(c)
}
