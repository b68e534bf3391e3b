package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/crewbill/internal/clock"
	appconfig "github.com/smallbiznis/crewbill/internal/config"
	customerdomain "github.com/smallbiznis/crewbill/internal/customer/domain"
	customerservice "github.com/smallbiznis/crewbill/internal/customer/service"
	orgdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
	orgservice "github.com/smallbiznis/crewbill/internal/organization/service"
	"github.com/smallbiznis/crewbill/internal/providers/pdf"
	"github.com/smallbiznis/crewbill/internal/providers/xlsx"
	"github.com/smallbiznis/crewbill/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serverFixture struct {
	engine *gin.Engine
	orgID  snowflake.ID
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&orgdomain.Organization{},
		&customerdomain.Customer{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC))

	orgs := orgservice.New(orgservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[orgdomain.Organization](db),
	})
	customers := customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo: repository.ProvideStore[customerdomain.Customer](db),
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             appconfig.Config{Environment: "test"},
		Billing:         appconfig.NewStaticBillingConfigHolder(appconfig.DefaultBillingConfig()),
		OrganizationSvc: orgs,
		CustomerSvc:     customers,
		PDFProvider:     pdf.New(),
		XLSXExporter:    xlsx.New(),
	})

	org, err := orgs.Create(t.Context(), orgdomain.CreateOrganizationRequest{
		Name:      "Desert Crew Contracting",
		VATNumber: "310123456700003",
	})
	require.NoError(t, err)

	return &serverFixture{engine: srv.Engine(), orgID: org.ID}
}

func (f *serverFixture) do(method, path, body string, withOrg bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if withOrg {
		req.Header.Set("X-Org-Id", f.orgID.String())
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestCustomerRoundTrip(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/customers", `{"name":"Acme Towers","email":"billing@acme.test"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		Data customerdomain.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Acme Towers", created.Data.Name)
	assert.Equal(t, f.orgID, created.Data.OrgID)

	rec = f.do(http.MethodGet, "/api/customers", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Data []customerdomain.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, created.Data.ID, listed.Data[0].ID)
}

func TestCustomerListFirstPage(t *testing.T) {
	f := newServerFixture(t)

	for _, name := range []string{"Acme Towers", "Basin Works"} {
		rec := f.do(http.MethodPost, "/api/customers", fmt.Sprintf(`{"name":%q}`, name), true)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := f.do(http.MethodGet, "/api/customers?page_size=1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data     []customerdomain.Customer `json:"data"`
		PageInfo struct {
			NextPageToken string `json:"next_page_token"`
			HasMore       bool   `json:"has_more"`
		} `json:"page_info"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.PageInfo.HasMore)
	assert.NotEmpty(t, resp.PageInfo.NextPageToken)
}

func TestMissingOrgRejected(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/customers", "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Code string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	require.Len(t, resp.Error.Errors, 1)
	assert.Equal(t, "invalid_organization", resp.Error.Errors[0].Code)
}

func TestUnknownCustomerIsNotFound(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/customers/123456789", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error.Type)
}

func TestInvalidCustomerPayloadIsBadRequest(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/customers", `{"name":""}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
}
