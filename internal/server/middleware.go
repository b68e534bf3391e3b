package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/crewbill/internal/orgcontext"
	organizationdomain "github.com/smallbiznis/crewbill/internal/organization/domain"
)

// OrgContext resolves the active organization from the X-Org-Id header
// (falling back to the org_id query parameter, then the configured
// default) and stores it in the request context.
func (s *Server) OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Org-Id"))
		if raw == "" {
			raw = strings.TrimSpace(c.Query("org_id"))
		}

		var orgID int64
		if raw != "" {
			parsed, err := snowflake.ParseString(raw)
			if err != nil {
				AbortWithError(c, organizationdomain.ErrInvalidID)
				return
			}
			orgID = int64(parsed)
		} else if s.cfg.DefaultOrgID != 0 {
			orgID = s.cfg.DefaultOrgID
		} else {
			AbortWithError(c, newValidationError("org_id", "invalid_organization", "missing organization"))
			return
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
