package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/crewbill/internal/invoice/domain"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	organizationdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	"github.com/smallbiznis/crewbill/internal/providers/pdf"
)

func (s *Server) SynthesizeInvoice(c *gin.Context) {
	var req invoicedomain.SynthesizeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.SynthesizeMonthly(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query invoicedomain.ListInvoiceRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	inv, err := s.invoiceSvc.GetByID(ctx, invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	sellerName, sellerVAT := s.sellerIdentity(ctx)

	data := pdf.InvoiceData{
		SellerName:    sellerName,
		SellerVAT:     sellerVAT,
		CustomerName:  inv.CustomerName,
		InvoiceNumber: inv.InvoiceNumber,
		Period:        fmt.Sprintf("%04d-%02d", inv.InvoiceYear, inv.InvoiceMonth),
		IssueDate:     inv.IssuedAt.Format("2006-01-02"),
		QRPayload:     inv.QRPayload,
		Subtotal:      formatAmount(inv.Subtotal),
		VATAmount:     formatAmount(inv.VATAmount),
		Total:         formatAmount(inv.TotalAmount),
	}
	for _, line := range inv.Lines {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: line.Description,
			Quantity:    strconv.FormatFloat(line.Quantity, 'f', -1, 64),
			UnitPrice:   formatAmount(line.UnitPrice),
			VATRate:     strconv.FormatFloat(line.VATRate, 'f', -1, 64),
			Amount:      formatAmount(line.TotalAmount),
		})
	}

	doc, err := s.pdfProvider.GenerateInvoice(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", inv.InvoiceNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", body)
}

// sellerIdentity resolves the seller name and VAT number for rendering:
// the org's own when set, the configured seller otherwise.
func (s *Server) sellerIdentity(ctx context.Context) (string, string) {
	cfg := s.billing.Get()
	name := cfg.Seller.Name
	vat := cfg.Seller.VATNumber

	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok {
		return name, vat
	}
	org, err := s.organizationSvc.GetByID(ctx, organizationdomain.GetOrganizationRequest{ID: orgID.String()})
	if err != nil {
		return name, vat
	}
	if strings.TrimSpace(org.Name) != "" {
		name = org.Name
	}
	if strings.TrimSpace(org.VATNumber) != "" {
		vat = org.VATNumber
	}
	return name, vat
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidOrganization,
		invoicedomain.ErrInvalidCustomer,
		invoicedomain.ErrInvalidPeriod,
		invoicedomain.ErrInvalidLine,
		invoicedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
