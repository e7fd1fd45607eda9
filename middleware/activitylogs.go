package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	activitylogs "github.com/PartnerPortal/PartnerPortal-Backend/services/activity_logs"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
)

type ActivityLogMiddleware struct {
	logs *activitylogs.ActivityLog
}

func NewActivityLogMiddleware(logs *activitylogs.ActivityLog) *ActivityLogMiddleware {
	return &ActivityLogMiddleware{
		logs: logs,
	}
}

// ActivityLogger records every state-changing request once the handler has
// run, so the entry carries the final status and the authenticated user.
func (a *ActivityLogMiddleware) ActivityLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldSkipLogging(c.Request.Method, c.FullPath()) {
			c.Next()
			return
		}

		c.Next()

		params := activitylogs.CreateActivityLogParams{
			Action:     getActionFromRequest(c),
			EntityType: entityType(c.FullPath()),
			EntityID:   c.Param("id"),
			Status:     c.Writer.Status(),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if user, err := utils.GetActiveUser(c); err == nil {
			params.UserID = user.UserID
			params.Email = user.Email
		}

		a.logs.Create(c.Request.Context(), params)
	}
}

func shouldSkipLogging(method, path string) bool {
	// unmatched routes have no full path
	if path == "" {
		return true
	}
	readOnly := []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	return slices.Contains(readOnly, method)
}

func getActionFromRequest(c *gin.Context) string {
	switch {
	case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/auth/login":
		return "login"
	case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/auth/logout":
		return "logout"
	case c.Request.Method == http.MethodPatch && c.FullPath() == "/api/v1/profile":
		return "profile updated"
	case c.Request.Method == http.MethodPut && c.FullPath() == "/api/v1/theme":
		return "theme changed"
	case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/deals":
		return "deal created"
	case c.Request.Method == http.MethodPut && c.FullPath() == "/api/v1/deals/:id":
		return "deal updated"
	case c.Request.Method == http.MethodDelete && c.FullPath() == "/api/v1/deals/:id":
		return "deal deleted"
	default:
		return fmt.Sprintf("%s %s", c.Request.Method, c.FullPath())
	}
}

// entityType is the first path segment after the version prefix.
func entityType(path string) string {
	rest := strings.TrimPrefix(path, "/api/v1/")
	if rest == path {
		return ""
	}
	segment, _, _ := strings.Cut(rest, "/")
	return segment
}
