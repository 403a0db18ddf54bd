package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/service"
)

type createCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type createReferenceRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	LongName string `json:"long_name" binding:"max=100"`
}

type updateReferenceRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=50"`
	LongName *string `json:"long_name" binding:"omitempty,max=100"`
}

func (s *Server) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	category, err := s.catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.catalog.ListCategories(c.Request.Context(),
		intQuery(c, "skip", 0), intQuery(c, "limit", service.MaxPageSize))
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	category, err := s.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	category, err := s.catalog.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	if err := s.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category " + c.Param("id") + " deleted"})
}

func (s *Server) createGender(c *gin.Context) {
	var req createReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	gender, err := s.catalog.CreateGender(c.Request.Context(), req.Name, req.LongName)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gender)
}

func (s *Server) listGenders(c *gin.Context) {
	genders, err := s.catalog.ListGenders(c.Request.Context(),
		intQuery(c, "skip", 0), intQuery(c, "limit", service.MaxPageSize))
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, genders)
}

func (s *Server) getGender(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	gender, err := s.catalog.GetGender(c.Request.Context(), id)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gender)
}

func (s *Server) updateGender(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	var req updateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	gender, err := s.catalog.UpdateGender(c.Request.Context(), id, req.Name, req.LongName)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gender)
}

func (s *Server) deleteGender(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	if err := s.catalog.DeleteGender(c.Request.Context(), id); err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gender " + c.Param("id") + " deleted"})
}

func (s *Server) createSize(c *gin.Context) {
	var req createReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	size, err := s.catalog.CreateSize(c.Request.Context(), req.Name, req.LongName)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, size)
}

func (s *Server) listSizes(c *gin.Context) {
	sizes, err := s.catalog.ListSizes(c.Request.Context(),
		intQuery(c, "skip", 0), intQuery(c, "limit", service.MaxPageSize))
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}

func (s *Server) getSize(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	size, err := s.catalog.GetSize(c.Request.Context(), id)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, size)
}

func (s *Server) updateSize(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	var req updateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	size, err := s.catalog.UpdateSize(c.Request.Context(), id, req.Name, req.LongName)
	if err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, size)
}

func (s *Server) deleteSize(c *gin.Context) {
	id, ok := intParam(c)
	if !ok {
		return
	}
	if err := s.catalog.DeleteSize(c.Request.Context(), id); err != nil {
		s.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "size " + c.Param("id") + " deleted"})
}

func (s *Server) catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenderNotFound),
		errors.Is(err, service.ErrSizeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("catalog request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func intParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}
