package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	activitylogs "github.com/PartnerPortal/PartnerPortal-Backend/services/activity_logs"
	"github.com/PartnerPortal/PartnerPortal-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(logs *activitylogs.ActivityLog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewActivityLogMiddleware(logs).ActivityLogger())

	withUser := func(c *gin.Context) {
		c.Set(utils.ActiveUserKey, utils.TokenObject{UserID: "user-1", Email: "partner@partnerportal.dev"})
		c.Next()
	}

	r.GET("/api/v1/deals", withUser, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/api/v1/deals/:id", withUser, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/api/v1/deals/:id", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })
	return r
}

func TestActivityLoggerRecordsWrites(t *testing.T) {
	logs := activitylogs.NewActivityLog(0)
	r := newRouter(logs)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil),
		httptest.NewRequest(http.MethodPut, "/api/v1/deals/abc", nil),
		httptest.NewRequest(http.MethodDelete, "/api/v1/deals/abc", nil),
		httptest.NewRequest(http.MethodPost, "/nowhere", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.GetRecent(context.Background(), 10, 0)
	require.Len(t, entries, 2)

	deleted := entries[0]
	assert.Equal(t, "deal deleted", deleted.Action)
	assert.Equal(t, http.StatusUnauthorized, deleted.Status)
	assert.Empty(t, deleted.UserID)

	updated := entries[1]
	assert.Equal(t, "deal updated", updated.Action)
	assert.Equal(t, "deals", updated.EntityType)
	assert.Equal(t, "abc", updated.EntityID)
	assert.Equal(t, "user-1", updated.UserID)
	assert.Equal(t, http.StatusOK, updated.Status)
}

func TestEntityType(t *testing.T) {
	assert.Equal(t, "deals", entityType("/api/v1/deals/:id"))
	assert.Equal(t, "profile", entityType("/api/v1/profile"))
	assert.Equal(t, "", entityType("/"))
}
