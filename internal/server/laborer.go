package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	laborerdomain "github.com/smallbiznis/crewbill/internal/laborer/domain"
)

func (s *Server) CreateLaborer(c *gin.Context) {
	var req laborerdomain.CreateLaborerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Trade = strings.TrimSpace(req.Trade)

	resp, err := s.laborerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLaborers(c *gin.Context) {
	resp, err := s.laborerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLaborerByID(c *gin.Context) {
	resp, err := s.laborerSvc.GetByID(c.Request.Context(), laborerdomain.GetLaborerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateLaborer(c *gin.Context) {
	var req laborerdomain.UpdateLaborerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.laborerSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteLaborer(c *gin.Context) {
	err := s.laborerSvc.Delete(c.Request.Context(), laborerdomain.GetLaborerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isLaborerValidationError(err error) bool {
	switch err {
	case laborerdomain.ErrInvalidOrganization,
		laborerdomain.ErrInvalidName,
		laborerdomain.ErrInvalidSalaryRate,
		laborerdomain.ErrInvalidOrgRate,
		laborerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
