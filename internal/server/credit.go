package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	creditdomain "github.com/smallbiznis/crewbill/internal/credit/domain"
)

func (s *Server) CreateCredit(c *gin.Context) {
	var req creditdomain.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Note = strings.TrimSpace(req.Note)

	resp, err := s.creditSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCredits(c *gin.Context) {
	var query creditdomain.ListCreditRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.creditSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCreditByID(c *gin.Context) {
	resp, err := s.creditSvc.GetByID(c.Request.Context(), creditdomain.GetCreditRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCreditStatus(c *gin.Context) {
	var req creditdomain.UpdateCreditStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.creditSvc.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCreditValidationError(err error) bool {
	switch err {
	case creditdomain.ErrInvalidOrganization,
		creditdomain.ErrInvalidCustomer,
		creditdomain.ErrInvalidDate,
		creditdomain.ErrInvalidAmount,
		creditdomain.ErrInvalidType,
		creditdomain.ErrInvalidStatus,
		creditdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
