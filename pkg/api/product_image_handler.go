package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/service"
)

type createImageRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	URL         string `json:"url" binding:"required,url,max=500"`
	Description string `json:"description" binding:"max=255"`
	IsMain      bool   `json:"is_main"`
}

type updateImageRequest struct {
	URL         *string `json:"url" binding:"omitempty,url,max=500"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	IsMain      *bool   `json:"is_main"`
}

func (s *Server) createImage(c *gin.Context) {
	var req createImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	image, err := s.images.Create(c.Request.Context(), service.ImageInput{
		ProductID:   req.ProductID,
		URL:         req.URL,
		Description: req.Description,
		IsMain:      req.IsMain,
	})
	if err != nil {
		s.imageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (s *Server) listImages(c *gin.Context) {
	images, err := s.images.List(c.Request.Context(), service.ImageFilters{
		ProductID: c.Query("product_id"),
		Skip:      intQuery(c, "skip", 0),
		Limit:     intQuery(c, "limit", service.MaxPageSize),
	})
	if err != nil {
		s.imageError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (s *Server) getImage(c *gin.Context) {
	image, err := s.images.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.imageError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (s *Server) updateImage(c *gin.Context) {
	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	image, err := s.images.Update(c.Request.Context(), c.Param("id"), service.ImageUpdateInput{
		URL:         req.URL,
		Description: req.Description,
		IsMain:      req.IsMain,
	})
	if err != nil {
		s.imageError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

func (s *Server) deleteImage(c *gin.Context) {
	imageID := c.Param("id")
	if err := s.images.Delete(c.Request.Context(), imageID); err != nil {
		s.imageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product image " + imageID + " deleted"})
}

func (s *Server) imageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImageNotFound), errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.logger.Error("product image request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
