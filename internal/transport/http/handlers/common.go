package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/brightshield/insurance-portal/internal/transport/http/middleware"
)

// respondJSONDownload serves a payload as a JSON file attachment.
func respondJSONDownload(c *gin.Context, filename string, payload any) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.JSON(200, payload)
}

// isStaff reports whether the caller holds an agent or admin role.
func isStaff(c *gin.Context) bool {
	role, ok := middleware.GetAuthenticatedRole(c)
	return ok && role.Staff()
}

// canAccessRecord reports whether the caller may read a record owned by ownerID.
// Staff see everything; customers only their own records.
func canAccessRecord(c *gin.Context, ownerID string) bool {
	if isStaff(c) {
		return true
	}
	userID, ok := middleware.GetAuthenticatedUserID(c)
	return ok && userID == ownerID
}
