package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/crewbill/internal/report/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) GetLaborReport(c *gin.Context) {
	var query reportdomain.ReportRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rows, err := s.reportSvc.Labor(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if wantsWorkbook(c) {
		doc, err := s.xlsxExporter.LaborReport(rows)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		serveWorkbook(c, "labor-report.xlsx", doc)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) GetClientReport(c *gin.Context) {
	var query reportdomain.ReportRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rows, err := s.reportSvc.Client(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if wantsWorkbook(c) {
		doc, err := s.xlsxExporter.ClientReport(rows)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		serveWorkbook(c, "client-report.xlsx", doc)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Server) GetProfitLossReport(c *gin.Context) {
	var query reportdomain.ReportRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	report, err := s.reportSvc.ProfitLoss(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) GetCreditLedger(c *gin.Context) {
	var query reportdomain.CreditLedgerRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rows, err := s.reportSvc.CreditLedger(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if wantsWorkbook(c) {
		doc, err := s.xlsxExporter.CreditLedger(rows)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		serveWorkbook(c, "credit-ledger.xlsx", doc)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func wantsWorkbook(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.Query("format")), "xlsx")
}

func serveWorkbook(c *gin.Context, filename string, doc io.Reader) {
	body, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, body)
}
