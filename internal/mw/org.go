package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrgHeader carries the caller's organization id on every request.
const OrgHeader = "X-Org-ID"

const orgContextKey = "orgID"

// RequireOrg parses the organization header and aborts with 400 when it is
// missing or malformed. Handlers read the parsed id via OrgID.
func RequireOrg() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OrgHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + OrgHeader + " header"})
			return
		}
		orgID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + OrgHeader + " header"})
			return
		}
		c.Set(orgContextKey, orgID)
		c.Next()
	}
}

// OrgID returns the organization id resolved by RequireOrg.
func OrgID(c *gin.Context) uuid.UUID {
	return c.MustGet(orgContextKey).(uuid.UUID)
}
