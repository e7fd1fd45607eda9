package api

import (
	"net/http"
	"strconv"

	"github.com/PartnerPortal/PartnerPortal-Backend/api/apistrings"
	basemodels "github.com/PartnerPortal/PartnerPortal-Backend/models"
	"github.com/PartnerPortal/PartnerPortal-Backend/services/contact"
	user_service "github.com/PartnerPortal/PartnerPortal-Backend/services/user"
	"github.com/gin-gonic/gin"
)

type Contacts struct {
	server *Server
}

func (c Contacts) router(server *Server) {
	c.server = server

	serverGroupV1 := server.router.Group("/api/v1")
	serverGroupV1.Use(c.server.AuthenticatedMiddleware())
	serverGroupV1.GET("contacts", RequireRole(user_service.RoleAdmin), c.listContacts)
	serverGroupV1.GET("contacts/:id", RequireRole(user_service.RoleAdmin), c.getContact)
	serverGroupV1.GET("accounts/:id", RequireRole(user_service.RolePartner), c.getAccount)
}

func (c *Contacts) listContacts(ctx *gin.Context) {
	params := contact.ListParams{
		Search: ctx.Query("search"),
	}

	if top := ctx.Query("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 1 {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidInput, "top must be a positive integer"))
			return
		}
		params.Top = n
	}

	page, err := c.server.contacts.ListContacts(ctx.Request.Context(), params)
	if err != nil {
		c.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("contacts fetched", page))
}

func (c *Contacts) getContact(ctx *gin.Context) {
	profile, err := c.server.contacts.GetContact(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("contact fetched", profile))
}

func (c *Contacts) getAccount(ctx *gin.Context) {
	company, err := c.server.contacts.GetAccount(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.server.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("account fetched", company))
}
