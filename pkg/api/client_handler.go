package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/backoffice/pkg/service"
)

type createClientRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	CPF     string `json:"cpf" binding:"required,len=11"`
	Address string `json:"address" binding:"max=500"`
}

type updateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	CPF     *string `json:"cpf" binding:"omitempty,len=11"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

func (s *Server) createClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	client, err := s.clients.Create(c.Request.Context(), service.ClientInput{
		Name:    req.Name,
		Email:   req.Email,
		CPF:     req.CPF,
		Address: req.Address,
	})
	if err != nil {
		s.clientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (s *Server) listClients(c *gin.Context) {
	clients, err := s.clients.List(c.Request.Context(), service.ClientFilters{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Skip:  intQuery(c, "skip", 0),
		Limit: intQuery(c, "limit", service.MaxPageSize),
	})
	if err != nil {
		s.clientError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (s *Server) getClient(c *gin.Context) {
	client, err := s.clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.clientError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) updateClient(c *gin.Context) {
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	client, err := s.clients.Update(c.Request.Context(), c.Param("id"), service.ClientUpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		CPF:     req.CPF,
		Address: req.Address,
	})
	if err != nil {
		s.clientError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (s *Server) deleteClient(c *gin.Context) {
	clientID := c.Param("id")
	if err := s.clients.Delete(c.Request.Context(), clientID); err != nil {
		s.clientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client " + clientID + " deleted"})
}

func (s *Server) clientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrCPFTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("client request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
