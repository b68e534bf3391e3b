package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
)

func (s *Server) CreateTimesheet(c *gin.Context) {
	var req timesheetdomain.CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.timesheetSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTimesheets(c *gin.Context) {
	var query timesheetdomain.ListTimesheetRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.timesheetSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTimesheetByID(c *gin.Context) {
	resp, err := s.timesheetSvc.GetByID(c.Request.Context(), timesheetdomain.GetTimesheetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTimesheet(c *gin.Context) {
	err := s.timesheetSvc.Delete(c.Request.Context(), timesheetdomain.GetTimesheetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isTimesheetValidationError(err error) bool {
	switch err {
	case timesheetdomain.ErrInvalidOrganization,
		timesheetdomain.ErrInvalidLaborer,
		timesheetdomain.ErrInvalidJob,
		timesheetdomain.ErrInvalidDate,
		timesheetdomain.ErrInvalidHours,
		timesheetdomain.ErrInvalidMultiplier,
		timesheetdomain.ErrInvalidSalaryRate,
		timesheetdomain.ErrInvalidOrgRate,
		timesheetdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
