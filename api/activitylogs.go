package api

import (
	"net/http"
	"strconv"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/gin-gonic/gin"
)

type ActivityLog struct {
	server *Server
}

func (h ActivityLog) router(server *Server) {
	h.server = server

	serverGroupV1 := server.router.Group("/api/v1/activitylogs")
	serverGroupV1.Use(h.server.AuthenticatedMiddleware(), RequireRole(user_service.RoleAdmin))
	serverGroupV1.GET("/recent", h.GetRecentActivity)
	serverGroupV1.GET("/user/:user_id", h.GetUserActivity)
}

func pagination(c *gin.Context) (int, int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		return 0, 0, false
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, false
	}
	return limit, offset, true
}

func (h *ActivityLog) GetUserActivity(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		c.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, "limit must be 1-500 and offset non-negative"))
		return
	}

	logs := h.server.activity.GetByUser(c.Request.Context(), c.Param("user_id"), limit, offset)
	c.JSON(http.StatusOK, basemodels.NewSuccess("Activity logs retrieved successfully", logs))
}

func (h *ActivityLog) GetRecentActivity(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		c.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, "limit must be 1-500 and offset non-negative"))
		return
	}

	logs := h.server.activity.GetRecent(c.Request.Context(), limit, offset)
	c.JSON(http.StatusOK, basemodels.NewSuccess("Activity logs retrieved successfully", logs))
}
