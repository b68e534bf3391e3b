package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	supplydomain "github.com/smallbiznis/crewbill/internal/supply/domain"
)

func (s *Server) CreateSupply(c *gin.Context) {
	var req supplydomain.CreateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	resp, err := s.supplySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSupplies(c *gin.Context) {
	var query supplydomain.ListSupplyRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplySvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSupplyByID(c *gin.Context) {
	resp, err := s.supplySvc.GetByID(c.Request.Context(), supplydomain.GetSupplyRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSupply(c *gin.Context) {
	err := s.supplySvc.Delete(c.Request.Context(), supplydomain.GetSupplyRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isSupplyValidationError(err error) bool {
	switch err {
	case supplydomain.ErrInvalidOrganization,
		supplydomain.ErrInvalidCategory,
		supplydomain.ErrInvalidName,
		supplydomain.ErrInvalidDate,
		supplydomain.ErrInvalidUnitPrice,
		supplydomain.ErrInvalidQuantity,
		supplydomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
