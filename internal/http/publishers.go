package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

type PublishersController struct {
	catalog *library.CatalogService
}

func NewPublishersController(catalog *library.CatalogService) *PublishersController {
	return &PublishersController{catalog: catalog}
}

func (pc *PublishersController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", pc.List)
	rg.GET("/:id", pc.Get)
	rg.POST("", pc.Create)
	rg.PUT("/:id", pc.Update)
	rg.DELETE("/:id", pc.Delete)
}

func (pc *PublishersController) List(c *gin.Context) {
	publishers, err := pc.catalog.ListPublishers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list publishers")
		return
	}
	c.JSON(http.StatusOK, mapSlice(publishers, toPublisherDTO))
}

func (pc *PublishersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	publisher, err := pc.catalog.GetPublisher(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get publisher")
		return
	}
	c.JSON(http.StatusOK, toPublisherDTO(*publisher))
}

func (pc *PublishersController) Create(c *gin.Context) {
	var req CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		respondServiceError(c, err, "create publisher")
		return
	}
	publisher, err := pc.catalog.CreatePublisher(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "create publisher")
		return
	}
	respondCreated(c, toPublisherDTO(*publisher))
}

func (pc *PublishersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	publisher, err := pc.catalog.GetPublisher(ctx, id)
	if err != nil {
		respondServiceError(c, err, "update publisher")
		return
	}
	in, err := req.merge(publisher)
	if err != nil {
		respondServiceError(c, err, "update publisher")
		return
	}
	if err := pc.catalog.UpdatePublisher(ctx, id, in); err != nil {
		respondServiceError(c, err, "update publisher")
		return
	}
	respondNoContent(c)
}

// Delete responds 409 while books still reference the publisher.
func (pc *PublishersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.catalog.DeletePublisher(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete publisher")
		return
	}
	respondNoContent(c)
}
